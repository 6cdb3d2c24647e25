package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/svgi/internal/cmdtypes"
	iconfig "github.com/opmodel/svgi/internal/config"
	oerrors "github.com/opmodel/svgi/internal/errors"
)

const configHeader = `# svgi configuration
#
# targetLibrary      preact, react or a module specifier
# factoryExpression  symbol imported from a custom library
# pragmaExpression   element constructor call for a custom library
# isDefaultImport    import the factory as the default export (custom only)
# include / exclude  glob patterns selecting the files to transform
# clean              default, none or command (see cleanCommand)

`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new svgi configuration file",
		Long: `Create a new svgi configuration file with default values.

The configuration file is created at ./svgi.yaml by default.
Use --config flag to specify a different location.

Examples:
  # Initialize configuration
  svgi config init

  # Overwrite existing configuration
  svgi config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, gc, force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func runInit(c *cobra.Command, gc *cmdtypes.GlobalConfig, force bool) error {
	path, err := configPath(gc)
	if err != nil {
		return fmt.Errorf("getting config file path: %w", err)
	}

	exists, err := iconfig.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if exists && !force {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: path,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not create config directory")
	}

	data, err := yaml.Marshal(iconfig.DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return oerrors.Wrap(oerrors.ErrPermission, "could not write "+path)
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", path)
	fmt.Fprintln(c.OutOrStdout(), "Validate with: svgi config vet")
	return nil
}
