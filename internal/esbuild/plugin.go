// Package esbuild installs the svgi transform into esbuild as an on-load
// plugin.
package esbuild

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/opmodel/svgi/internal/svgi"
)

// DefaultFilter selects files by extension before the svgi include/exclude
// patterns are consulted.
const DefaultFilter = `\.svg$`

// Option configures the esbuild plugin.
type Option func(*options)

type options struct {
	ctx       context.Context
	filter    string
	namespace string
	onWarn    func(id, msg string)
}

// WithContext sets the context passed to every transform. esbuild callbacks
// carry no context of their own.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// WithFilter overrides the esbuild path filter regexp (Go syntax).
func WithFilter(filter string) Option {
	return func(o *options) {
		o.filter = filter
	}
}

// WithNamespace overrides the esbuild namespace. Default: "file".
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// WithWarnHook observes every warning the plugin reports to esbuild.
func WithWarnHook(fn func(id, msg string)) Option {
	return func(o *options) {
		o.onWarn = fn
	}
}

// Plugin adapts p to the esbuild plugin API.
func Plugin(p *svgi.Plugin, opts ...Option) api.Plugin {
	o := &options{
		ctx:       context.Background(),
		filter:    DefaultFilter,
		namespace: "file",
	}
	for _, opt := range opts {
		opt(o)
	}

	return api.Plugin{
		Name: p.Name(),
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: o.filter, Namespace: o.namespace}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				return load(o, p, args)
			})
		},
	}
}

func load(o *options, p *svgi.Plugin, args api.OnLoadArgs) (api.OnLoadResult, error) {
	// Leave rejected files to the other loaders without touching the disk.
	if !p.Match(args.Path) {
		return api.OnLoadResult{}, nil
	}

	content, err := os.ReadFile(args.Path)
	if err != nil {
		return api.OnLoadResult{}, fmt.Errorf("reading %s: %w", args.Path, err)
	}

	var (
		mu       sync.Mutex
		warnings []api.Message
	)
	warn := svgi.WithWarn(func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		warnings = append(warnings, api.Message{PluginName: p.Name(), Text: msg})
		if o.onWarn != nil {
			o.onWarn(args.Path, msg)
		}
	})

	res, err := p.Transform(o.ctx, string(content), args.Path, warn)
	if err != nil {
		return api.OnLoadResult{Warnings: warnings}, err
	}
	if res == nil {
		return api.OnLoadResult{Warnings: warnings}, nil
	}

	return api.OnLoadResult{
		PluginName: p.Name(),
		Contents:   &res.Code,
		ResolveDir: filepath.Dir(args.Path),
		Loader:     api.LoaderJS,
		Warnings:   warnings,
	}, nil
}
