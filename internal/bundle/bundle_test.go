package bundle

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/svgi/internal/svgi"
	"github.com/opmodel/svgi/internal/testutil"
)

func project(t *testing.T, svg string) string {
	t.Helper()
	return testutil.Project(t, map[string]string{
		"logo.svg": svg,
		"app.js":   "import Logo from './logo.svg';\nexport { Logo };\n",
	})
}

func newPlugin(t *testing.T, dir string) *svgi.Plugin {
	t.Helper()
	p, err := svgi.New(svgi.Options{Library: "react", BaseDir: dir})
	require.NoError(t, err)
	return p
}

func TestRunBundlesWithLibraryExternal(t *testing.T) {
	dir := project(t, `<svg viewBox="0 0 1 1"><circle r="1"/></svg>`)

	res, err := Run(context.Background(), newPlugin(t, dir), Options{
		EntryPoints: []string{filepath.Join(dir, "app.js")},
		Outfile:     filepath.Join(dir, "dist", "app.js"),
		WorkingDir:  dir,
	})
	require.NoError(t, err)
	require.Len(t, res.OutputFiles, 1)

	out := string(res.OutputFiles[0].Contents)
	assert.Contains(t, out, `from "react"`)
	assert.Contains(t, out, "React.createElement")
	assert.Contains(t, out, "viewBox")
	assert.NoFileExists(t, filepath.Join(dir, "dist", "app.js"), "Write is off")
}

func TestRunWritesFiles(t *testing.T) {
	dir := project(t, `<svg><g/></svg>`)

	res, err := Run(context.Background(), newPlugin(t, dir), Options{
		EntryPoints: []string{filepath.Join(dir, "app.js")},
		Outdir:      filepath.Join(dir, "dist"),
		Format:      "cjs",
		Minify:      true,
		Sourcemap:   true,
		Write:       true,
		WorkingDir:  dir,
	})
	require.NoError(t, err)
	assert.Len(t, res.OutputFiles, 2, "bundle and source map")
	assert.FileExists(t, filepath.Join(dir, "dist", "app.js"))
	assert.FileExists(t, filepath.Join(dir, "dist", "app.js.map"))
}

func TestRunBuildError(t *testing.T) {
	dir := project(t, `<p>nope</p>`)

	_, err := Run(context.Background(), newPlugin(t, dir), Options{
		EntryPoints: []string{filepath.Join(dir, "app.js")},
		Outdir:      filepath.Join(dir, "dist"),
		WorkingDir:  dir,
	})

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr), "got %v", err)
	require.NotEmpty(t, buildErr.Messages)
	assert.Contains(t, buildErr.Error(), "no opening <svg> tag")
	assert.Contains(t, buildErr.Error(), "build failed with")
}

func TestRunCanceledContext(t *testing.T) {
	dir := project(t, `<svg/>`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, newPlugin(t, dir), Options{EntryPoints: []string{filepath.Join(dir, "app.js")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRequiresEntryPoints(t *testing.T) {
	_, err := Run(context.Background(), newPlugin(t, t.TempDir()), Options{})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]api.Format{
		"":     api.FormatESModule,
		"esm":  api.FormatESModule,
		"CJS":  api.FormatCommonJS,
		"iife": api.FormatIIFE,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("amd")
	assert.Error(t, err)
}

func TestParsePlatform(t *testing.T) {
	got, err := ParsePlatform("node")
	require.NoError(t, err)
	assert.Equal(t, api.PlatformNode, got)

	_, err = ParsePlatform("deno")
	assert.Error(t, err)
}

func TestBuildOptionsExternal(t *testing.T) {
	p := newPlugin(t, t.TempDir())

	bo, err := buildOptions(context.Background(), p, Options{External: []string{"lodash"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"lodash", "react"}, bo.External)

	bo, err = buildOptions(context.Background(), p, Options{BundleLibrary: true})
	require.NoError(t, err)
	assert.Empty(t, bo.External)
}
