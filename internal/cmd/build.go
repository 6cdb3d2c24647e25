package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/bundle"
	"github.com/opmodel/svgi/internal/cmdtypes"
	"github.com/opmodel/svgi/internal/cmdutil"
	"github.com/opmodel/svgi/internal/output"
)

// NewBuildCmd creates the build command.
func NewBuildCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var bf cmdutil.BundleFlags

	c := &cobra.Command{
		Use:   "build <entry>...",
		Short: "Bundle entry points with SVG imports turned into components",
		Long: `Bundle JavaScript entry points with esbuild. Every imported file that
matches the include/exclude patterns is loaded as a component module.

The target library is left external unless --bundle-library is set.

Examples:
  # Bundle into ./dist
  svgi build src/app.js

  # Single minified CommonJS file
  svgi build src/app.js --outfile dist/app.cjs --format cjs --minify

  # Check that everything compiles without writing files
  svgi build src/app.js --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c.Context(), c.OutOrStdout(), args, gc, &bf)
		},
	}

	bf.AddTo(c)
	return c
}

func runBuild(ctx context.Context, w io.Writer, args []string, gc *cmdtypes.GlobalConfig, bf *cmdutil.BundleFlags) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	p, err := gc.NewPlugin(wd)
	if err != nil {
		return cmdutil.Fail(err)
	}

	opts := bundle.Options{
		EntryPoints:   absPaths(wd, args),
		Format:        bf.Format,
		Platform:      bf.Platform,
		Minify:        bf.Minify,
		Sourcemap:     bf.Sourcemap,
		External:      bf.External,
		BundleLibrary: bf.BundleLibrary,
		Write:         !bf.DryRun,
		WorkingDir:    wd,
	}
	if bf.Outfile != "" {
		opts.Outfile = absPath(wd, bf.Outfile)
	} else {
		opts.Outdir = absPath(wd, bf.Outdir)
	}

	var result *bundle.Result
	err = output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var runErr error
		result, runErr = bundle.Run(ctx, p, opts)
		return runErr
	}, output.WithTitle(fmt.Sprintf("Bundling %d entry point(s)", len(args))))
	if err != nil {
		return cmdutil.Fail(err)
	}

	for _, warning := range result.Warnings {
		output.Warn(warning)
	}

	files := make([]output.OutputFile, len(result.OutputFiles))
	for i, f := range result.OutputFiles {
		files[i] = output.OutputFile{Path: cmdutil.RelativeID(wd, f.Path), Size: len(f.Contents)}
	}
	fmt.Fprintln(w, output.RenderOutputTable(files))

	if bf.DryRun {
		output.Info("dry run: no files written")
		return nil
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("Build complete: %d file(s)", len(files))))
	return nil
}

func absPath(wd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(wd, path)
}

func absPaths(wd string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = absPath(wd, p)
	}
	return out
}
