package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/cmdtypes"
	"github.com/opmodel/svgi/internal/cmdutil"
	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/manifest"
	"github.com/opmodel/svgi/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var update bool

	c := &cobra.Command{
		Use:   "diff <manifest> <file>...",
		Short: "Compare generated modules against a recorded manifest",
		Long: `Regenerate modules for the given files and compare them with a manifest
written by 'svgi transform -o yaml' or '-o json'.

Exits with code 7 when the manifest is stale.

Examples:
  # Fail CI when icons changed without regenerating the manifest
  svgi diff svgi.lock.yaml icons/*.svg

  # Rewrite the manifest after reviewing the changes
  svgi diff --update svgi.lock.yaml icons/*.svg`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(c.Context(), c.OutOrStdout(), args[0], args[1:], gc, update)
		},
	}

	c.Flags().BoolVar(&update, "update", false,
		"Rewrite the manifest with the regenerated modules")
	return c
}

func runDiff(ctx context.Context, w io.Writer, manifestPath string, files []string, gc *cmdtypes.GlobalConfig, update bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	p, err := gc.NewPlugin(wd)
	if err != nil {
		return cmdutil.Fail(err)
	}

	// --update may create a missing manifest.
	previous, err := manifest.Load(manifestPath)
	if err != nil && (!update || !errors.Is(err, oerrors.ErrNotFound)) {
		return cmdutil.Fail(err)
	}

	results, err := cmdutil.TransformFiles(ctx, p, files, wd)
	if err != nil {
		return cmdutil.Fail(err)
	}

	var current []manifest.Entry
	for _, r := range results {
		if !r.Skipped() {
			current = append(current, manifest.NewEntry(r.ID, r.Result))
		}
	}

	result, err := manifest.Diff(previous, current, output.IsTTY())
	if err != nil {
		return err
	}

	fmt.Fprintln(w, strings.TrimRight(result.Render(), "\n"))

	if !result.HasChanges() {
		return nil
	}

	if update {
		if err := manifest.WriteFile(manifestPath, current); err != nil {
			return cmdutil.Fail(fmt.Errorf("writing manifest: %w", err))
		}
		fmt.Fprintln(w, output.FormatCheckmark("Manifest updated: "+manifestPath))
		return nil
	}

	return &cmdtypes.ExitError{
		Code: cmdtypes.ExitStale,
		Err:  oerrors.NewStaleError(manifestPath, result.Changed()),
	}
}
