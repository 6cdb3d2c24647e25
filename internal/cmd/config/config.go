// Package config provides CLI command implementations for the config command group.
package config

import (
	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/cmdtypes"
	iconfig "github.com/opmodel/svgi/internal/config"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the svgi CLI.`,
	}

	c.AddCommand(NewConfigInitCmd(gc))
	c.AddCommand(NewConfigVetCmd(gc))

	return c
}

// configPath returns the resolved config path, falling back to the default
// lookup when the command runs without the root's PersistentPreRunE.
func configPath(gc *cmdtypes.GlobalConfig) (string, error) {
	if gc != nil && gc.ConfigPath != "" {
		return gc.ConfigPath, nil
	}
	path, err := iconfig.GetConfigFile()
	if err != nil {
		return "", err
	}
	return iconfig.ExpandPath(path)
}
