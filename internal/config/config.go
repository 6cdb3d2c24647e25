// Package config provides configuration loading and management.
package config

import (
	"fmt"

	"github.com/opmodel/svgi/internal/svgi"
)

// Clean modes accepted by the clean key.
const (
	CleanDefault = "default"
	CleanNone    = "none"
	CleanCommand = "command"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
}

// Config represents the svgi configuration file (svgi.yaml).
type Config struct {
	// TargetLibrary is the UI library generated modules import from.
	// Env: SVGI_TARGET_LIBRARY. Legacy key: jsx.
	TargetLibrary string `mapstructure:"targetLibrary" yaml:"targetLibrary,omitempty" json:"targetLibrary,omitempty"`

	// FactoryExpression is the symbol imported from TargetLibrary.
	// Env: SVGI_FACTORY_EXPRESSION. Legacy key: factory.
	FactoryExpression string `mapstructure:"factoryExpression" yaml:"factoryExpression,omitempty" json:"factoryExpression,omitempty"`

	// PragmaExpression is the call that builds the root node.
	// Env: SVGI_PRAGMA_EXPRESSION. Legacy key: pragma.
	PragmaExpression string `mapstructure:"pragmaExpression" yaml:"pragmaExpression,omitempty" json:"pragmaExpression,omitempty"`

	// IsDefaultImport selects a default import. Unset means true.
	// Env: SVGI_IS_DEFAULT_IMPORT. Legacy key: default.
	IsDefaultImport *bool `mapstructure:"isDefaultImport" yaml:"isDefaultImport,omitempty" json:"isDefaultImport,omitempty"`

	// Include lists glob patterns of transformed files. Env: SVGI_INCLUDE.
	Include []string `mapstructure:"include" yaml:"include,omitempty" json:"include,omitempty"`

	// Exclude lists glob patterns of skipped files. Env: SVGI_EXCLUDE.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty" json:"exclude,omitempty"`

	// Clean selects the clean step: default, none or command. Env: SVGI_CLEAN.
	Clean string `mapstructure:"clean" yaml:"clean,omitempty" json:"clean,omitempty"`

	// CleanCommand is the program and arguments used when Clean is "command".
	CleanCommand []string `mapstructure:"cleanCommand" yaml:"cleanCommand,omitempty" json:"cleanCommand,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log" yaml:"log,omitempty" json:"log,omitempty"`

	// Deprecations lists legacy keys found while loading.
	Deprecations []svgi.Deprecation `mapstructure:"-" yaml:"-" json:"-"`

	// sources records where each loaded key came from (env or config).
	sources map[string]ConfigSource
}

// Source returns where key was loaded from, or "" when it was not set.
func (c *Config) Source(key string) ConfigSource {
	if c == nil {
		return ""
	}
	return c.sources[key]
}

// DefaultConfig returns a Config with all default values populated.
// Used by `svgi config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		TargetLibrary: svgi.LibraryPreact,
		Include:       append([]string(nil), svgi.DefaultInclude...),
		Clean:         CleanDefault,
	}
}

// Cleaner builds the svgi.Cleaner for a clean mode.
func Cleaner(mode string, command []string, dir string) (svgi.Cleaner, error) {
	switch mode {
	case "", CleanDefault:
		return svgi.DefaultCleaner, nil
	case CleanNone:
		return svgi.NoClean, nil
	case CleanCommand:
		if len(command) == 0 {
			return nil, &svgi.ConfigurationError{
				Option:  "cleanCommand",
				Message: fmt.Sprintf("is required when clean is %q", CleanCommand),
			}
		}
		return svgi.CommandCleaner{Args: command, Dir: dir}, nil
	default:
		return nil, &svgi.ConfigurationError{
			Option:  "clean",
			Message: fmt.Sprintf("must be one of %s, %s or %s, got %q", CleanDefault, CleanNone, CleanCommand, mode),
		}
	}
}
