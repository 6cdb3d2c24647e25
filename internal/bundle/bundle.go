// Package bundle runs esbuild builds with the svgi plugin installed.
package bundle

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	svgiesbuild "github.com/opmodel/svgi/internal/esbuild"
	"github.com/opmodel/svgi/internal/output"
	"github.com/opmodel/svgi/internal/svgi"
)

// Options configures a build.
type Options struct {
	// EntryPoints are the files to bundle (required).
	EntryPoints []string

	// Outdir is the output directory. Ignored when Outfile is set.
	Outdir string

	// Outfile is the single output file.
	Outfile string

	// Format is esm, cjs or iife. Empty means esm.
	Format string

	// Platform is browser, node or neutral. Empty means browser.
	Platform string

	// Minify enables whitespace, identifier and syntax minification.
	Minify bool

	// Sourcemap emits linked source maps.
	Sourcemap bool

	// External lists additional modules left unbundled.
	External []string

	// BundleLibrary bundles the target library instead of leaving it external.
	BundleLibrary bool

	// Write writes output files to disk.
	Write bool

	// WorkingDir is the absolute working directory. Empty means esbuild's default.
	WorkingDir string
}

// OutputFile is one file produced by the build.
type OutputFile struct {
	Path     string
	Contents []byte
}

// Result is the outcome of a successful build.
type Result struct {
	OutputFiles []OutputFile
	Warnings    []string
}

// BuildError reports esbuild errors.
type BuildError struct {
	Messages []string
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "build failed with %d error(s)", len(e.Messages))
	for _, m := range e.Messages {
		b.WriteString("\n  ")
		b.WriteString(m)
	}
	return b.String()
}

// ParseFormat maps a format name to its esbuild value.
func ParseFormat(s string) (api.Format, error) {
	switch strings.ToLower(s) {
	case "", "esm":
		return api.FormatESModule, nil
	case "cjs":
		return api.FormatCommonJS, nil
	case "iife":
		return api.FormatIIFE, nil
	default:
		return api.FormatDefault, fmt.Errorf("unknown format %q (valid: esm, cjs, iife)", s)
	}
}

// ParsePlatform maps a platform name to its esbuild value.
func ParsePlatform(s string) (api.Platform, error) {
	switch strings.ToLower(s) {
	case "", "browser":
		return api.PlatformBrowser, nil
	case "node":
		return api.PlatformNode, nil
	case "neutral":
		return api.PlatformNeutral, nil
	default:
		return api.PlatformBrowser, fmt.Errorf("unknown platform %q (valid: browser, node, neutral)", s)
	}
}

// Run bundles opts.EntryPoints with plugin installed. Cancelling ctx cancels
// the build.
func Run(ctx context.Context, plugin *svgi.Plugin, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(opts.EntryPoints) == 0 {
		return nil, fmt.Errorf("no entry points")
	}

	buildOpts, err := buildOptions(ctx, plugin, opts)
	if err != nil {
		return nil, err
	}

	output.Debug("starting build",
		"entries", strings.Join(opts.EntryPoints, ","),
		"library", plugin.Library().Source,
		"external", strings.Join(buildOpts.External, ","),
	)

	bctx, cerr := api.Context(buildOpts)
	if cerr != nil {
		return nil, &BuildError{Messages: formatMessages(cerr.Errors)}
	}
	defer bctx.Dispose()

	done := make(chan api.BuildResult, 1)
	go func() {
		done <- bctx.Rebuild()
	}()

	var res api.BuildResult
	select {
	case res = <-done:
	case <-ctx.Done():
		bctx.Cancel()
		<-done
		return nil, ctx.Err()
	}

	if len(res.Errors) > 0 {
		return nil, &BuildError{Messages: formatMessages(res.Errors)}
	}

	result := &Result{Warnings: formatMessages(res.Warnings)}
	for _, f := range res.OutputFiles {
		result.OutputFiles = append(result.OutputFiles, OutputFile{Path: f.Path, Contents: f.Contents})
	}
	return result, nil
}

func buildOptions(ctx context.Context, plugin *svgi.Plugin, opts Options) (api.BuildOptions, error) {
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return api.BuildOptions{}, err
	}
	platform, err := ParsePlatform(opts.Platform)
	if err != nil {
		return api.BuildOptions{}, err
	}

	external := append([]string(nil), opts.External...)
	if !opts.BundleLibrary {
		external = append(external, plugin.Library().Source)
	}

	sourcemap := api.SourceMapNone
	if opts.Sourcemap {
		sourcemap = api.SourceMapLinked
	}

	bo := api.BuildOptions{
		AbsWorkingDir:     opts.WorkingDir,
		EntryPoints:       opts.EntryPoints,
		Bundle:            true,
		Write:             opts.Write,
		Format:            format,
		Platform:          platform,
		External:          external,
		MinifyWhitespace:  opts.Minify,
		MinifyIdentifiers: opts.Minify,
		MinifySyntax:      opts.Minify,
		Sourcemap:         sourcemap,
		LogLevel:          api.LogLevelSilent,
		Plugins: []api.Plugin{
			svgiesbuild.Plugin(plugin,
				svgiesbuild.WithContext(ctx),
				svgiesbuild.WithWarnHook(func(id, msg string) {
					output.FileLogger(id).Warn(msg)
				}),
			),
		},
	}
	if opts.Outfile != "" {
		bo.Outfile = opts.Outfile
	} else {
		bo.Outdir = opts.Outdir
	}
	return bo, nil
}

func formatMessages(msgs []api.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		text := m.Text
		if m.PluginName != "" {
			text = "[plugin " + m.PluginName + "] " + text
		}
		if loc := m.Location; loc != nil {
			text = fmt.Sprintf("%s:%d:%d: %s", loc.File, loc.Line, loc.Column, text)
		}
		out = append(out, text)
	}
	return out
}
