// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and internal/cmd/config.
package cmdtypes

import (
	"fmt"

	"github.com/opmodel/svgi/internal/config"
	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/svgi"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed into every sub-command
// constructor.
type GlobalConfig struct {
	Config     *config.Config
	Resolved   *config.ResolvedConfig
	ConfigPath string // resolved --config path
	Verbose    bool

	// LoadErr is the config load failure, if any. Commands that need a
	// plugin report it; config vet inspects the file itself.
	LoadErr error
}

// NewPlugin builds a transform plugin from the resolved settings. baseDir
// anchors relative include/exclude patterns.
func (g *GlobalConfig) NewPlugin(baseDir string) (*svgi.Plugin, error) {
	if g == nil || g.Resolved == nil {
		return nil, fmt.Errorf("configuration not resolved")
	}
	if g.LoadErr != nil {
		return nil, g.LoadErr
	}
	opts, err := g.Resolved.Options(baseDir)
	if err != nil {
		return nil, err
	}
	return svgi.New(opts)
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitPermissionDenied = oerrors.ExitPermissionDenied
	ExitNotFound         = oerrors.ExitNotFound
	ExitStale            = oerrors.ExitStale
)

// ExitError is a type alias to internal/errors.ExitError so every package
// shares the same underlying type.
type ExitError = oerrors.ExitError
