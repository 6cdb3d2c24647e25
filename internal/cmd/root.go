// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/cmd/config"
	"github.com/opmodel/svgi/internal/cmdtypes"
	iconfig "github.com/opmodel/svgi/internal/config"
	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/output"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	config        string
	library       string
	factory       string
	pragma        string
	defaultImport bool
	include       []string
	exclude       []string
	clean         string
	verbose       bool
	timestamps    bool
}

// NewRootCmd creates the root command for the svgi CLI.
func NewRootCmd() *cobra.Command {
	var flags globalFlags
	gc := &cmdtypes.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "svgi",
		Short: "Turn SVG files into UI components",
		Long: `svgi turns SVG files into JavaScript modules that export a component
for Preact, React or any library with a createElement-style factory.

Configuration is read from ./svgi.yaml (override with --config or SVGI_CONFIG).
Flags take precedence over environment variables, which take precedence over
the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd, &flags, gc)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "Path to config file (env: SVGI_CONFIG)")
	pf.StringVar(&flags.library, "library", "", "Target library: preact, react or a module specifier (env: SVGI_TARGET_LIBRARY)")
	pf.StringVar(&flags.factory, "factory", "", "Factory symbol imported from a custom library (env: SVGI_FACTORY_EXPRESSION)")
	pf.StringVar(&flags.pragma, "pragma", "", "Element constructor call for a custom library (env: SVGI_PRAGMA_EXPRESSION)")
	pf.BoolVar(&flags.defaultImport, "default-import", true, "Import the factory as the default export of a custom library (env: SVGI_IS_DEFAULT_IMPORT)")
	pf.StringSliceVar(&flags.include, "include", nil, "Glob patterns of files to transform (env: SVGI_INCLUDE)")
	pf.StringSliceVar(&flags.exclude, "exclude", nil, "Glob patterns of files to skip (env: SVGI_EXCLUDE)")
	pf.StringVar(&flags.clean, "clean", "", "Clean step: default, none or command (env: SVGI_CLEAN)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewTransformCmd(gc))
	rootCmd.AddCommand(NewBuildCmd(gc))
	rootCmd.AddCommand(NewDiffCmd(gc))
	rootCmd.AddCommand(config.NewConfigCmd(gc))
	rootCmd.AddCommand(NewVersionCmd(gc))

	return rootCmd
}

// initializeGlobals loads configuration, resolves every setting and sets up
// logging.
func initializeGlobals(cmd *cobra.Command, flags *globalFlags, gc *cmdtypes.GlobalConfig) error {
	pathResult, err := iconfig.ResolveConfigPath(iconfig.ResolveConfigPathOptions{
		FlagValue: flags.config,
	})
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
	}

	configPath, err := iconfig.ExpandPath(pathResult.Value)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not expand config path")
	}
	pathResult.Value = configPath

	// A broken config file must not block commands that do not transform.
	loaded, loadErr := iconfig.NewLoader().Load(configPath)
	if loadErr != nil {
		loadErr = &oerrors.DetailError{
			Type:     "validation failed",
			Message:  loadErr.Error(),
			Location: configPath,
			Hint:     "Run 'svgi config vet' for details",
			Cause:    oerrors.ErrValidation,
		}
	}

	resolved := iconfig.ResolveAll(pathResult, iconfig.FlagValues{
		Library:       flags.library,
		Factory:       flags.factory,
		Pragma:        flags.pragma,
		DefaultImport: flags.defaultImport,
		Include:       flags.include,
		Exclude:       flags.exclude,
		Clean:         flags.clean,
		Timestamps:    flags.timestamps,
		Changed:       cmd.Flags().Changed,
	}, loaded)

	gc.Config = loaded
	gc.Resolved = resolved
	gc.ConfigPath = configPath
	gc.Verbose = flags.verbose
	gc.LoadErr = loadErr

	// Timestamps: flag (if explicitly set) > env > config > default (nil = true)
	output.SetupLogging(output.LogConfig{
		Verbose:    flags.verbose,
		Timestamps: resolved.Timestamps.Value,
	})

	if loadErr != nil {
		output.Debug("config load error", "error", loadErr)
	}
	if flags.verbose {
		output.Debug("initializing CLI",
			"config", configPath,
			"library", resolved.TargetLibrary.Value,
			"clean", resolved.Clean.Value,
		)
		resolved.LogResolvedValues()
	}

	return nil
}
