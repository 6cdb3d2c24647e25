package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigName is the config file looked up in the working directory.
const DefaultConfigName = "svgi.yaml"

// DefaultConfigFile returns ./svgi.yaml as an absolute path.
func DefaultConfigFile() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, DefaultConfigName), nil
}

// GetConfigFile returns the config file path.
// If SVGI_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("SVGI_CONFIG"); envPath != "" {
		return envPath, nil
	}
	return DefaultConfigFile()
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
