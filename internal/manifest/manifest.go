// Package manifest records generated modules so later runs can detect drift.
//
// A manifest is either a stream of YAML documents, one per entry, or a JSON
// array. Entries are always written sorted by id.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/output"
	"github.com/opmodel/svgi/internal/svgi"
)

// Entry is one generated module.
type Entry struct {
	ID   string         `json:"id" yaml:"id"`
	Code string         `json:"code" yaml:"code"`
	Map  svgi.SourceMap `json:"map" yaml:"map"`
}

// NewEntry builds an entry from a transform result.
func NewEntry(id string, res *svgi.Result) Entry {
	return Entry{ID: id, Code: res.Code, Map: res.Map}
}

// Write encodes entries in the given format. Only YAML and JSON are valid.
func Write(entries []Entry, format output.Format, w io.Writer) error {
	sorted := sortedCopy(entries)

	switch format {
	case output.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, e := range sorted {
			if err := enc.Encode(e); err != nil {
				return fmt.Errorf("encoding %s: %w", e.ID, err)
			}
		}
		return enc.Close()
	case output.FormatJSON:
		if sorted == nil {
			sorted = []Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sorted)
	default:
		return fmt.Errorf("manifest format must be yaml or json, got %q", format)
	}
}

// WriteFile writes entries to path, choosing the format from the extension.
func WriteFile(path string, entries []Entry) error {
	var buf bytes.Buffer
	if err := Write(entries, formatFor(path), &buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Load reads a manifest. JSON arrays and YAML document streams are both
// accepted.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("manifest not found", path,
				"Generate one with 'svgi transform -o yaml <file>... > "+path+"'")
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes manifest bytes. location is only used in error messages.
func Parse(location string, data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var entries []Entry
	if trimmed[0] == '[' {
		if err := sigsyaml.Unmarshal(trimmed, &entries); err != nil {
			return nil, oerrors.NewValidationError("invalid JSON manifest: "+err.Error(), location, "", "")
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(trimmed))
		for {
			var e Entry
			err := dec.Decode(&e)
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, oerrors.NewValidationError("invalid YAML manifest: "+err.Error(), location, "", "")
			}
			entries = append(entries, e)
		}
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, oerrors.NewValidationError(fmt.Sprintf("entry %d has no id", i), location, "id", "")
		}
		if seen[e.ID] {
			return nil, oerrors.NewValidationError("duplicate entry "+e.ID, location, "id", "")
		}
		seen[e.ID] = true
	}
	return entries, nil
}

func formatFor(path string) output.Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return output.FormatJSON
	}
	return output.FormatYAML
}

func sortedCopy(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := append([]Entry(nil), entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
