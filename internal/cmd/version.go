package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/cmdtypes"
	iconfig "github.com/opmodel/svgi/internal/config"
	"github.com/opmodel/svgi/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show svgi version information.

Displays:
  - svgi version, commit, and build date
  - esbuild and CUE SDK versions (linked into the binary)
  - the clean command's version, when clean is "command"`,
		RunE: func(c *cobra.Command, _ []string) error {
			w := c.OutOrStdout()
			fmt.Fprintln(w, version.Get().String())

			r := gc.Resolved
			if r != nil && r.Clean.Value == iconfig.CleanCommand && len(r.CleanCommand.Value) > 0 {
				fmt.Fprintln(w, "\nClean command:")
				fmt.Fprintln(w, version.DetectTool(r.CleanCommand.Value[0]).String())
			}
			return nil
		},
	}
}
