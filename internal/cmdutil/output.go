package cmdutil

import (
	"errors"

	"github.com/opmodel/svgi/internal/bundle"
	"github.com/opmodel/svgi/internal/cmdtypes"
	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/output"
	"github.com/opmodel/svgi/internal/svgi"
)

// PrintTransformError logs err in a user-friendly format.
func PrintTransformError(err error) {
	var (
		malformed *svgi.MalformedInputError
		cleanErr  *svgi.CleanFunctionError
		cfgErr    *svgi.ConfigurationError
		buildErr  *bundle.BuildError
		detail    *oerrors.DetailError
	)

	switch {
	case errors.As(err, &malformed):
		output.FileLogger(malformed.ID).Error("not an SVG document", "reason", malformed.Reason)
	case errors.As(err, &cleanErr):
		output.FileLogger(cleanErr.ID).Error("clean failed", "error", cleanErr.Cause)
	case errors.As(err, &cfgErr):
		output.Error("invalid configuration", "option", cfgErr.Option, "error", cfgErr.Message)
	case errors.As(err, &buildErr):
		output.Error("build failed")
		for _, msg := range buildErr.Messages {
			output.Error(msg)
		}
	case errors.As(err, &detail):
		output.Error(detail.Error())
	default:
		output.Error(err.Error())
	}
}

// Fail prints err and returns it wrapped in an ExitError that main will not
// print again.
func Fail(err error) error {
	PrintTransformError(err)
	return &cmdtypes.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: true,
	}
}
