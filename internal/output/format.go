package output

import (
	"fmt"
	"strings"
)

// Format specifies how transform results are printed.
type Format string

const (
	// FormatJS prints the generated module source.
	FormatJS Format = "js"

	// FormatYAML prints a YAML manifest.
	FormatYAML Format = "yaml"

	// FormatJSON prints a JSON manifest.
	FormatJSON Format = "json"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatJS, FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses a format name. An empty string means FormatJS.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "js", "javascript":
		return FormatJS, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ValidFormats returns the valid format names.
func ValidFormats() []string {
	return []string{"js", "yaml", "json"}
}
