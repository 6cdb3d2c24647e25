// Package filter decides which module ids a transform is applied to.
//
// Patterns use glob syntax with "/" as the path separator ("*" stays within
// one path segment, "**" crosses segments). Relative patterns are anchored
// at a base directory unless they start with "*"; ids are made absolute the
// same way before matching.
package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Filter is an include/exclude predicate over module ids.
type Filter struct {
	baseDir string
	include []glob.Glob
	exclude []glob.Glob
}

// New compiles the include and exclude patterns. An empty baseDir means the
// current working directory.
func New(include, exclude []string, baseDir string) (*Filter, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}

	f := &Filter{baseDir: absBase}
	if f.include, err = compileAll(include, absBase); err != nil {
		return nil, err
	}
	if f.exclude, err = compileAll(exclude, absBase); err != nil {
		return nil, err
	}
	return f, nil
}

func compileAll(patterns []string, baseDir string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		if strings.TrimSpace(p) == "" {
			continue
		}
		g, err := glob.Compile(anchor(p, baseDir), '/')
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// anchor resolves a relative pattern against baseDir.
func anchor(pattern, baseDir string) string {
	if strings.HasPrefix(pattern, "*") || filepath.IsAbs(pattern) || strings.HasPrefix(pattern, "/") {
		return filepath.ToSlash(pattern)
	}
	base := strings.TrimSuffix(glob.QuoteMeta(filepath.ToSlash(baseDir)), "/")
	return base + "/" + strings.TrimPrefix(filepath.ToSlash(pattern), "./")
}

// Match reports whether id is selected: not excluded, and included when
// any include pattern is set.
func (f *Filter) Match(id string) bool {
	// Ids with a NUL byte belong to virtual modules of other plugins.
	if id == "" || strings.ContainsRune(id, 0) {
		return false
	}

	norm := f.normalize(id)
	for _, g := range f.exclude {
		if g.Match(norm) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(norm) {
			return true
		}
	}
	return false
}

func (f *Filter) normalize(id string) string {
	if !filepath.IsAbs(id) {
		id = filepath.Join(f.baseDir, id)
	}
	return filepath.ToSlash(filepath.Clean(id))
}
