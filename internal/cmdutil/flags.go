// Package cmdutil provides shared command utilities for the svgi subcommands.
// It centralizes flag groups, concurrent file transforms and error output.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/output"
)

// OutputFlags holds flags for commands that emit generated modules
// (transform).
type OutputFlags struct {
	Output string
	OutDir string
}

// AddTo registers the output flags on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Output, "output", "o", string(output.FormatJS),
		"Output format: js, yaml, json")
	cmd.Flags().StringVar(&f.OutDir, "out-dir", "",
		"Write one .js module per file into this directory (js output only)")
}

// BundleFlags holds flags for commands that run esbuild (build).
type BundleFlags struct {
	Outdir        string
	Outfile       string
	Format        string
	Platform      string
	Minify        bool
	Sourcemap     bool
	External      []string
	BundleLibrary bool
	DryRun        bool
}

// AddTo registers the bundle flags on the given cobra command.
func (f *BundleFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Outdir, "outdir", "dist",
		"Output directory")
	cmd.Flags().StringVar(&f.Outfile, "outfile", "",
		"Single output file (overrides --outdir)")
	cmd.Flags().StringVar(&f.Format, "format", "esm",
		"Output module format: esm, cjs, iife")
	cmd.Flags().StringVar(&f.Platform, "platform", "browser",
		"Target platform: browser, node, neutral")
	cmd.Flags().BoolVar(&f.Minify, "minify", false,
		"Minify the output")
	cmd.Flags().BoolVar(&f.Sourcemap, "sourcemap", false,
		"Emit linked source maps")
	cmd.Flags().StringSliceVar(&f.External, "external", nil,
		"Modules to leave unbundled (can be repeated)")
	cmd.Flags().BoolVar(&f.BundleLibrary, "bundle-library", false,
		"Bundle the target library instead of leaving it external")
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false,
		"Build without writing files")
}
