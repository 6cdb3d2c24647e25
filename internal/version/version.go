// Package version provides version information for the svgi CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Module paths whose versions are reported.
const (
	esbuildModule = "github.com/evanw/esbuild"
	cueModule     = "cuelang.org/go"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// ESBuildVersion is the linked esbuild library version.
	ESBuildVersion string `json:"esbuildVersion"`

	// CUESDKVersion is the linked CUE SDK version.
	CUESDKVersion string `json:"cueSDKVersion"`
}

// Get returns the current version information.
func Get() Info {
	info := Info{
		Version:        Version,
		GitCommit:      GitCommit,
		BuildDate:      BuildDate,
		GoVersion:      runtime.Version(),
		ESBuildVersion: "unknown",
		CUESDKVersion:  "unknown",
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, dep := range bi.Deps {
		switch dep.Path {
		case esbuildModule:
			info.ESBuildVersion = dep.Version
		case cueModule:
			info.CUESDKVersion = dep.Version
		}
	}
	return info
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("svgi:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nLibraries:\n  esbuild: %s\n  CUE SDK: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.ESBuildVersion, i.CUESDKVersion)
}
