package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffNoChanges(t *testing.T) {
	res, err := Diff(sampleEntries(), sampleEntries(), false)
	require.NoError(t, err)
	assert.False(t, res.HasChanges())
	assert.Empty(t, res.Changed())
	assert.Equal(t, "No changes detected.", res.Render())
}

func TestDiffAddedRemovedModified(t *testing.T) {
	previous := []Entry{
		{ID: "a.svg", Code: "function A() {}"},
		{ID: "b.svg", Code: "function B() {}"},
		{ID: "c.svg", Code: "function C() {}"},
	}
	current := []Entry{
		{ID: "a.svg", Code: "function A() {}"},
		{ID: "b.svg", Code: "function B2() {}"},
		{ID: "d.svg", Code: "function D() {}"},
	}

	res, err := Diff(previous, current, false)
	require.NoError(t, err)
	require.True(t, res.HasChanges())

	assert.Equal(t, []string{"d.svg"}, res.Added)
	assert.Equal(t, []string{"c.svg"}, res.Removed)
	require.Len(t, res.Modified, 1)
	assert.Equal(t, "b.svg", res.Modified[0].Name)
	assert.Contains(t, res.Modified[0].Diff, "code")
	assert.Contains(t, res.Modified[0].Diff, "function B2() {}")

	assert.Equal(t, []string{"b.svg", "c.svg", "d.svg"}, res.Changed())

	rendered := res.Render()
	assert.Contains(t, rendered, "Added:")
	assert.Contains(t, rendered, "Removed:")
	assert.Contains(t, rendered, "Modified:")
}

func TestDiffEmptyInputs(t *testing.T) {
	res, err := Diff(nil, nil, false)
	require.NoError(t, err)
	assert.False(t, res.HasChanges())
}
