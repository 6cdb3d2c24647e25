package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/cmdtypes"
	"github.com/opmodel/svgi/internal/cmdutil"
	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/manifest"
	"github.com/opmodel/svgi/internal/output"
)

// NewTransformCmd creates the transform command.
func NewTransformCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlags

	c := &cobra.Command{
		Use:   "transform <file>...",
		Short: "Generate component modules from SVG files",
		Long: `Generate a component module for each SVG file.

Files that do not match the include/exclude patterns are skipped.

Output formats:
  js      Module source on stdout, or one file per input with --out-dir
  yaml    A manifest of YAML documents, one per module
  json    A manifest as a JSON array

Examples:
  # Print the Preact component for one icon
  svgi transform icons/logo.svg

  # Generate React components into a directory
  svgi transform --library react --out-dir src/icons icons/*.svg

  # Record a manifest for 'svgi diff'
  svgi transform -o yaml icons/*.svg > svgi.lock.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runTransform(c.Context(), c.OutOrStdout(), args, gc, &of)
		},
	}

	of.AddTo(c)
	return c
}

func runTransform(ctx context.Context, w io.Writer, args []string, gc *cmdtypes.GlobalConfig, of *cmdutil.OutputFlags) error {
	format, err := output.ParseFormat(of.Output)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err}
	}
	if of.OutDir != "" && format != output.FormatJS {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitValidationError,
			Err:  fmt.Errorf("--out-dir requires -o js, got %s", format),
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	p, err := gc.NewPlugin(wd)
	if err != nil {
		return cmdutil.Fail(err)
	}

	results, err := cmdutil.TransformFiles(ctx, p, args, wd)
	if err != nil {
		return cmdutil.Fail(err)
	}

	var generated []cmdutil.FileResult
	for _, r := range results {
		if !r.Skipped() {
			generated = append(generated, r)
		}
	}
	if len(generated) == 0 {
		output.Warn("no files matched the include/exclude patterns")
		return nil
	}

	switch {
	case format == output.FormatJS && of.OutDir != "":
		return writeModules(w, of.OutDir, generated)
	case format == output.FormatJS:
		return printModules(w, generated)
	default:
		entries := make([]manifest.Entry, len(generated))
		for i, r := range generated {
			entries[i] = manifest.NewEntry(r.ID, r.Result)
		}
		return manifest.Write(entries, format, w)
	}
}

func printModules(w io.Writer, generated []cmdutil.FileResult) error {
	for i, r := range generated {
		if len(generated) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "// %s\n", r.ID)
		}
		if _, err := io.WriteString(w, r.Result.Code); err != nil {
			return err
		}
	}
	return nil
}

func writeModules(w io.Writer, outDir string, generated []cmdutil.FileResult) error {
	modules := make([]output.ModuleFile, len(generated))
	for i, r := range generated {
		modules[i] = output.ModuleFile{ID: r.ID, Code: r.Result.Code}
	}

	written, err := output.WriteModules(outDir, modules)
	if err != nil {
		if os.IsPermission(err) {
			return oerrors.NewPermissionError("cannot write modules", outDir, "")
		}
		return err
	}

	for _, path := range written {
		fmt.Fprintln(w, output.FormatFileLine(path, output.StatusGenerated))
	}
	fmt.Fprintln(w, output.FormatCheckmark(fmt.Sprintf("%d module(s) written to %s", len(written), outDir)))
	return nil
}
