package manifest

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/output"
	"github.com/opmodel/svgi/internal/svgi"
)

func sampleEntries() []Entry {
	return []Entry{
		{ID: "icons/zap.svg", Code: "import { h } from 'preact';\nexport default function (props) {}\n"},
		{ID: "icons/arrow.svg", Code: "export default function (props) {}\n"},
	}
}

func TestNewEntry(t *testing.T) {
	e := NewEntry("a.svg", &svgi.Result{Code: "x", Map: svgi.EmptySourceMap})
	assert.Equal(t, Entry{ID: "a.svg", Code: "x", Map: svgi.EmptySourceMap}, e)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(sampleEntries(), output.FormatYAML, &buf))

	assert.Contains(t, buf.String(), "---")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("icons/arrow.svg")), bytes.Index(buf.Bytes(), []byte("icons/zap.svg")),
		"entries are sorted by id")

	entries, err := Parse("test.yaml", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "icons/arrow.svg", entries[0].ID)
	assert.Equal(t, sampleEntries()[0], entries[1])
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(sampleEntries(), output.FormatJSON, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("[")))

	entries, err := Parse("test.json", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, sampleEntries()[1], entries[0])
}

func TestWriteEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(nil, output.FormatJSON, &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteRejectsJS(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(sampleEntries(), output.FormatJS, &buf))
}

func TestWriteFileAndLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"svgi.lock.yaml", "svgi.lock.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, sampleEntries()))

			entries, err := Load(path)
			require.NoError(t, err)
			assert.Len(t, entries, 2)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"missing id":   "code: x\n",
		"duplicate id": "id: a\n---\nid: a\n",
		"bad yaml":     "id: [\n",
		"bad json":     `[{"id": 1}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("m.yaml", []byte(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse("m.yaml", []byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
