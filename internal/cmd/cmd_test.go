package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/manifest"
	"github.com/opmodel/svgi/internal/testutil"
)

const logoSVG = testutil.LogoSVG

var project = testutil.ChdirProject

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--timestamps=false"}, args...))
	err := root.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	return oerrors.ExitCodeFromError(err)
}

func TestRootCmdSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"transform", "build", "diff", "config", "version"} {
		c, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}
	for _, flag := range []string{"config", "library", "factory", "pragma", "default-import", "include", "exclude", "clean", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestTransformPrintsModule(t *testing.T) {
	project(t, map[string]string{"logo.svg": logoSVG})

	out, err := execute(t, "transform", "logo.svg")
	require.NoError(t, err)
	assert.Contains(t, out, "import { h } from 'preact';")
	assert.Contains(t, out, "export default function (props) {")
	assert.NotContains(t, out, "xmlns")
	assert.NotContains(t, out, "// logo.svg", "single file has no header")
}

func TestTransformMultipleFiles(t *testing.T) {
	project(t, map[string]string{"a.svg": "<svg/>", "b.svg": "<svg/>"})

	out, err := execute(t, "transform", "a.svg", "b.svg")
	require.NoError(t, err)
	assert.Contains(t, out, "// a.svg\n")
	assert.Contains(t, out, "// b.svg\n")
}

func TestTransformLibraryFlag(t *testing.T) {
	project(t, map[string]string{"logo.svg": logoSVG})

	out, err := execute(t, "--library", "react", "transform", "logo.svg")
	require.NoError(t, err)
	assert.Contains(t, out, "import React from 'react';")
	assert.Contains(t, out, "React.createElement('svg'")
}

func TestTransformConfigFile(t *testing.T) {
	project(t, map[string]string{
		"logo.svg":  logoSVG,
		"svgi.yaml": "jsx: react\n",
	})

	out, err := execute(t, "transform", "logo.svg")
	require.NoError(t, err)
	assert.Contains(t, out, "import React from 'react';", "legacy key is honored")
}

func TestTransformFlagBeatsConfig(t *testing.T) {
	project(t, map[string]string{
		"logo.svg":  logoSVG,
		"svgi.yaml": "targetLibrary: react\n",
	})

	out, err := execute(t, "--library", "preact", "transform", "logo.svg")
	require.NoError(t, err)
	assert.Contains(t, out, "import { h } from 'preact';")
}

func TestTransformCustomLibraryRequiresFactory(t *testing.T) {
	project(t, map[string]string{"logo.svg": logoSVG})

	_, err := execute(t, "--library", "mithril", "transform", "logo.svg")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))
}

func TestTransformSkipsUnmatched(t *testing.T) {
	project(t, map[string]string{"logo.svg": logoSVG})

	out, err := execute(t, "--exclude", "logo.svg", "transform", "logo.svg")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestTransformManifestOutput(t *testing.T) {
	project(t, map[string]string{"icons/logo.svg": logoSVG})

	out, err := execute(t, "transform", "-o", "yaml", "icons/logo.svg")
	require.NoError(t, err)

	entries, err := manifest.Parse("stdout", []byte(out))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "icons/logo.svg", entries[0].ID)
	assert.Contains(t, entries[0].Code, "export default function (props)")
}

func TestTransformOutDir(t *testing.T) {
	dir := project(t, map[string]string{"logo.svg": logoSVG})

	out, err := execute(t, "transform", "--out-dir", "gen", "logo.svg")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gen", "logo.js"))
	assert.Contains(t, out, "1 module(s) written")
}

func TestTransformInvalidOutputOptions(t *testing.T) {
	project(t, map[string]string{"logo.svg": logoSVG})

	_, err := execute(t, "transform", "-o", "xml", "logo.svg")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))

	_, err = execute(t, "transform", "-o", "yaml", "--out-dir", "gen", "logo.svg")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))
}

func TestTransformMalformedInput(t *testing.T) {
	project(t, map[string]string{"broken.svg": "<div/>"})

	_, err := execute(t, "transform", "broken.svg")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.True(t, exitErr.Printed)
}

func TestTransformMissingFile(t *testing.T) {
	project(t, nil)

	_, err := execute(t, "transform", "missing.svg")
	assert.Equal(t, oerrors.ExitNotFound, exitCode(err))
}

func TestTransformBrokenConfig(t *testing.T) {
	project(t, map[string]string{
		"logo.svg":  logoSVG,
		"svgi.yaml": "targetLibrary: [\n",
	})

	_, err := execute(t, "transform", "logo.svg")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))
}

func TestDiffWorkflow(t *testing.T) {
	dir := project(t, map[string]string{"logo.svg": logoSVG})
	lock := filepath.Join(dir, "svgi.lock.yaml")

	out, err := execute(t, "transform", "-o", "yaml", "logo.svg")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(lock, []byte(out), 0o644))

	out, err = execute(t, "diff", lock, "logo.svg")
	require.NoError(t, err)
	assert.Contains(t, out, "No changes detected.")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.svg"), []byte(`<svg width="32"><g/></svg>`), 0o644))

	out, err = execute(t, "diff", lock, "logo.svg")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitStale, exitCode(err))
	assert.True(t, errors.Is(err, oerrors.ErrStale))
	assert.Contains(t, out, "logo.svg")

	_, err = execute(t, "diff", "--update", lock, "logo.svg")
	require.NoError(t, err)

	_, err = execute(t, "diff", lock, "logo.svg")
	assert.NoError(t, err)
}

func TestDiffUpdateCreatesManifest(t *testing.T) {
	dir := project(t, map[string]string{"logo.svg": logoSVG})
	lock := filepath.Join(dir, "svgi.lock.json")

	_, err := execute(t, "diff", lock, "logo.svg")
	assert.Equal(t, oerrors.ExitNotFound, exitCode(err))

	_, err = execute(t, "diff", "--update", lock, "logo.svg")
	require.NoError(t, err)

	entries, err := manifest.Load(lock)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "logo.svg", entries[0].ID)
}

func TestBuild(t *testing.T) {
	dir := project(t, map[string]string{
		"logo.svg": logoSVG,
		"app.js":   "import Logo from './logo.svg';\nexport default Logo;\n",
	})

	out, err := execute(t, "build", "app.js", "--outdir", "dist")
	require.NoError(t, err)
	assert.Contains(t, out, "Build complete")

	data, err := os.ReadFile(filepath.Join(dir, "dist", "app.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `from "preact"`)
}

func TestBuildDryRun(t *testing.T) {
	dir := project(t, map[string]string{
		"logo.svg": logoSVG,
		"app.js":   "import Logo from './logo.svg';\nexport default Logo;\n",
	})

	out, err := execute(t, "build", "app.js", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "dist/app.js")
	assert.NoDirExists(t, filepath.Join(dir, "dist"))
}

func TestBuildFailure(t *testing.T) {
	project(t, map[string]string{
		"logo.svg": "<p/>",
		"app.js":   "import Logo from './logo.svg';\nexport default Logo;\n",
	})

	_, err := execute(t, "build", "app.js", "--dry-run")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(err))
}

func TestVersion(t *testing.T) {
	project(t, nil)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "svgi:")
	assert.Contains(t, out, "esbuild:")
	assert.NotContains(t, out, "Clean command:")
}

func TestVersionReportsCleanCommand(t *testing.T) {
	project(t, map[string]string{
		"svgi.yaml": "clean: command\ncleanCommand: [svgi-test-no-such-tool]\n",
	})

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Clean command:")
	assert.Contains(t, out, "svgi-test-no-such-tool: not found")
}
