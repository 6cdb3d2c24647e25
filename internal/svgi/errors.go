package svgi

import (
	"errors"
	"fmt"
)

// Sentinel errors for the transform error taxonomy.
var (
	// ErrConfiguration indicates the plugin options could not be resolved.
	ErrConfiguration = errors.New("configuration error")

	// ErrCleanFunction indicates the clean function broke its contract.
	ErrCleanFunction = errors.New("clean function error")

	// ErrMalformedInput indicates the SVG has no recognizable root element.
	ErrMalformedInput = errors.New("malformed input")
)

// ConfigurationError reports a missing target library or an unresolved
// factory/pragma expression.
type ConfigurationError struct {
	// Option is the option name as users write it in configuration.
	Option string

	// Message describes what is wrong with the option.
	Message string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Option, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrConfiguration and the cause, if any.
func (e *ConfigurationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrConfiguration, e.Cause}
	}
	return []error{ErrConfiguration}
}

// CleanFunctionError reports a clean function that returned neither a
// string nor a deferred string, or whose deferred clean failed.
type CleanFunctionError struct {
	ID    string
	Cause error
}

// Error implements the error interface.
func (e *CleanFunctionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("clean %s: %v", e.ID, e.Cause)
	}
	return fmt.Sprintf("clean %s: clean function did not return a string or a deferred string", e.ID)
}

// Unwrap returns ErrCleanFunction and the cause, if any.
func (e *CleanFunctionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrCleanFunction, e.Cause}
	}
	return []error{ErrCleanFunction}
}

// MalformedInputError reports cleaned SVG text without an opening <svg> tag.
type MalformedInputError struct {
	ID     string
	Reason string
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.ID, e.Reason)
}

// Unwrap returns ErrMalformedInput.
func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}
