package version

import (
	"bytes"
	"os/exec"
	"regexp"
	"strings"
)

// toolVersionRegex matches version output like "svgo 3.2.0" or "v1.2.3".
var toolVersionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// ToolInfo describes an external program used as a clean command.
type ToolInfo struct {
	// Name is the program as configured.
	Name string `json:"name"`

	// Path is the resolved executable path.
	Path string `json:"path"`

	// Version is the reported version, if it could be parsed.
	Version string `json:"version,omitempty"`

	// Found indicates the program is on PATH.
	Found bool `json:"found"`

	// Message explains a missing program or unreadable version.
	Message string `json:"message,omitempty"`
}

// DetectTool looks up name on PATH and asks it for its version.
func DetectTool(name string) ToolInfo {
	path, err := exec.LookPath(name)
	if err != nil {
		return ToolInfo{
			Name:    name,
			Message: name + " not found in PATH",
		}
	}

	info := ToolInfo{Name: name, Path: path, Found: true}
	version, err := toolVersion(path)
	if err != nil {
		info.Message = "failed to get version: " + err.Error()
		return info
	}
	info.Version = version
	return info
}

// String returns a human-readable tool info string.
func (t ToolInfo) String() string {
	if !t.Found {
		return "  " + t.Name + ": not found"
	}
	if t.Version == "" {
		return "  " + t.Name + ": " + t.Path + " (" + t.Message + ")"
	}
	return "  " + t.Name + ": " + t.Version + " (" + t.Path + ")"
}

func toolVersion(path string) (string, error) {
	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return extractVersion(out.String())
}

// extractVersion pulls the first semver-looking token out of tool output.
func extractVersion(output string) (string, error) {
	match := toolVersionRegex.FindString(output)
	if match == "" {
		return "", &versionParseError{output: strings.TrimSpace(output)}
	}
	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}
	return match, nil
}

type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse version from output: " + e.output
}
