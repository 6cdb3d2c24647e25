package output

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ModuleFile is one generated module to write to disk.
type ModuleFile struct {
	// ID is the source file id the module was generated from.
	ID string

	// Code is the generated module source.
	Code string
}

// WriteModules writes each module to outDir as <base name>.js and returns the
// written paths in input order. Name collisions get a numeric suffix.
func WriteModules(outDir string, modules []ModuleFile) ([]string, error) {
	if len(modules) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	usedNames := make(map[string]int)
	written := make([]string, 0, len(modules))
	for _, m := range modules {
		dest := filepath.Join(outDir, moduleFilename(m.ID, usedNames))
		if err := os.WriteFile(dest, []byte(m.Code), 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", dest, err)
		}
		Debug("wrote module", "id", m.ID, "file", dest)
		written = append(written, dest)
	}
	return written, nil
}

// moduleFilename derives a collision-free file name from a source id.
func moduleFilename(id string, usedNames map[string]int) string {
	base := path.Base(filepath.ToSlash(id))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = sanitizeName(base)
	if base == "" || base == "." || base == "/" {
		base = "module"
	}

	count, exists := usedNames[base]
	usedNames[base] = count + 1
	if exists {
		return fmt.Sprintf("%s-%d.js", base, count+1)
	}
	return base + ".js"
}

// sanitizeName makes a name safe for use in filenames.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "",
		"<", "",
		">", "",
		"|", "-",
	)
	return replacer.Replace(name)
}
