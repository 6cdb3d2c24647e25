// Package testutil provides test helpers for svgi tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// LogoSVG is a small icon as exported by a typical design tool.
const LogoSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24"><path d="M0 0"/></svg>`

// WriteFile creates a file with the given content under dir, creating parent
// directories as needed, and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// Project creates a temporary directory holding files (slash-separated
// names to contents) and returns its path.
func Project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}

// ChdirProject is Project followed by a chdir into it for the rest of the
// test.
func ChdirProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := Project(t, files)
	t.Chdir(dir)
	return dir
}
