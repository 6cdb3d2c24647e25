package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/svgi/internal/cmdtypes"
	iconfig "github.com/opmodel/svgi/internal/config"
	oerrors "github.com/opmodel/svgi/internal/errors"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the svgi configuration file",
		Long: `Validate the svgi configuration file against the internal schema.

Checks performed:
  1. Config file exists at the resolved path
  2. Config file is valid YAML
  3. Every key is known and has the right type
  4. clean: command comes with a cleanCommand

Legacy keys (jsx, factory, pragma, default) are accepted and reported.

The config path is resolved using precedence:
  --config flag > SVGI_CONFIG env > ./svgi.yaml`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVet(c, gc)
		},
	}
}

func runVet(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	path, err := configPath(gc)
	if err != nil {
		return fmt.Errorf("getting config file path: %w", err)
	}

	exists, err := iconfig.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: path,
			Hint:     "Run 'svgi config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	validator, err := iconfig.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	stderr := c.ErrOrStderr()
	if err := validator.ValidateFile(path); err != nil {
		var validationErrs iconfig.ValidationErrors
		if errors.As(err, &validationErrs) {
			fmt.Fprintln(stderr, "Error: config validation failed")
			fmt.Fprintf(stderr, "  File: %s\n\n", path)
			for _, e := range validationErrs {
				fmt.Fprintf(stderr, "  %s: %s\n", e.Field, e.Message)
			}
			return &cmdtypes.ExitError{
				Code:    cmdtypes.ExitValidationError,
				Err:     err,
				Printed: true,
			}
		}
		return fmt.Errorf("validating config: %w", err)
	}

	cfg, err := iconfig.NewLoader().Load(path)
	if err != nil {
		return oerrors.NewValidationError(err.Error(), path, "", "")
	}
	for _, d := range cfg.Deprecations {
		fmt.Fprintf(stderr, "Warning: %s\n", d.Message())
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file is valid: %s\n", path)
	return nil
}
