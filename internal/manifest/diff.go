package manifest

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"gopkg.in/yaml.v3"

	"github.com/opmodel/svgi/internal/output"
)

// DiffResult lists how a manifest differs from freshly generated entries.
type DiffResult struct {
	Added    []string
	Removed  []string
	Modified []output.ModifiedItem
}

// HasChanges reports whether anything differs.
func (d *DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0
}

// Changed returns every id that differs, sorted.
func (d *DiffResult) Changed() []string {
	out := make([]string, 0, len(d.Added)+len(d.Removed)+len(d.Modified))
	out = append(out, d.Added...)
	out = append(out, d.Removed...)
	for _, m := range d.Modified {
		out = append(out, m.Name)
	}
	sort.Strings(out)
	return out
}

// Render formats the result for the terminal.
func (d *DiffResult) Render() string {
	return output.RenderDiff(d.Added, d.Removed, d.Modified)
}

// Diff compares previous (the recorded manifest) against current.
func Diff(previous, current []Entry, useColor bool) (*DiffResult, error) {
	prev := index(previous)
	cur := index(current)
	result := &DiffResult{}

	for id, c := range cur {
		p, ok := prev[id]
		if !ok {
			result.Added = append(result.Added, id)
			continue
		}
		if p == c {
			continue
		}
		text, err := entryDiff(p, c, useColor)
		if err != nil {
			return nil, fmt.Errorf("diffing %s: %w", id, err)
		}
		result.Modified = append(result.Modified, output.ModifiedItem{Name: id, Diff: text})
	}
	for id := range prev {
		if _, ok := cur[id]; !ok {
			result.Removed = append(result.Removed, id)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Slice(result.Modified, func(i, j int) bool { return result.Modified[i].Name < result.Modified[j].Name })
	return result, nil
}

func index(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ID] = e
	}
	return m
}

// entryDiff renders a dyff report between two versions of one entry.
func entryDiff(from, to Entry, useColor bool) (string, error) {
	fromInput, err := inputFile("recorded", from)
	if err != nil {
		return "", err
	}
	toInput, err := inputFile("generated", to)
	if err != nil {
		return "", err
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return "", fmt.Errorf("comparing entries: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	writer := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := writer.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

func inputFile(location string, e Entry) (ytbx.InputFile, error) {
	data, err := yaml.Marshal(e)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: location, Documents: docs}, nil
}
