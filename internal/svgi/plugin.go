// Package svgi turns SVG files into small UI component modules.
//
// A Plugin is built once per bundler run from Options and transforms each
// matching file into an ES module that imports a node factory from the
// target library and renders the SVG through it. Files rejected by the
// include/exclude filter are skipped with a nil Result so the host bundler
// can hand them to other loaders.
package svgi

import (
	"context"

	"github.com/opmodel/svgi/internal/filter"
)

// PluginName is the name advertised to host bundlers.
const PluginName = "svgi"

// DefaultInclude selects every SVG file.
var DefaultInclude = []string{"**/*.svg"}

// Options configures a Plugin.
type Options struct {
	// Library is the UI library whose factory is imported (targetLibrary).
	// "preact" and "react" force their own factory, pragma and import style.
	Library string

	// Factory is the symbol imported from Library (factoryExpression).
	Factory string

	// Pragma is the call expression that builds the root node (pragmaExpression).
	Pragma string

	// IsDefault selects a default import (isDefaultImport). Nil means true.
	IsDefault *bool

	// Clean prepares the raw SVG. Nil means DefaultCleaner.
	Clean Cleaner

	// Include lists glob patterns of eligible file ids. Nil means DefaultInclude.
	Include []string

	// Exclude lists glob patterns of rejected file ids.
	Exclude []string

	// BaseDir resolves relative patterns and ids. Empty means the working directory.
	BaseDir string

	// Deprecations are legacy option names found while loading configuration.
	Deprecations []Deprecation
}

// SourceMap is the source map returned with generated code.
type SourceMap struct {
	Mappings string `json:"mappings"`
}

// EmptySourceMap is the only source map this plugin produces.
var EmptySourceMap = SourceMap{Mappings: ""}

// Result is the generated module for one file.
type Result struct {
	Code string    `json:"code"`
	Map  SourceMap `json:"map"`
}

// Plugin is the SVG transform. It is safe for concurrent use.
type Plugin struct {
	library      Library
	clean        Cleaner
	filter       *filter.Filter
	deprecations *deprecationNotices
}

// New resolves opts and builds the file filter.
func New(opts Options) (*Plugin, error) {
	if opts.Library == "" {
		return nil, &ConfigurationError{Option: "targetLibrary", Message: "is required"}
	}

	include := opts.Include
	if include == nil {
		include = DefaultInclude
	}
	f, err := filter.New(include, opts.Exclude, opts.BaseDir)
	if err != nil {
		return nil, &ConfigurationError{Option: "include/exclude", Message: "is not a valid pattern", Cause: err}
	}

	lib, err := resolveLibrary(opts)
	if err != nil {
		return nil, err
	}

	clean := opts.Clean
	if clean == nil {
		clean = DefaultCleaner
	}

	return &Plugin{
		library:      lib,
		clean:        clean,
		filter:       f,
		deprecations: newDeprecationNotices(opts.Deprecations),
	}, nil
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return PluginName
}

// Library returns the resolved library.
func (p *Plugin) Library() Library {
	return p.library
}

// Match reports whether Transform would process id.
func (p *Plugin) Match(id string) bool {
	return p.filter.Match(id)
}

// CallOption configures a single Transform call.
type CallOption func(*callConfig)

type callConfig struct {
	warn func(string)
}

// WithWarn sets the host diagnostic callback for the call.
func WithWarn(warn func(msg string)) CallOption {
	return func(c *callConfig) {
		c.warn = warn
	}
}

// Transform converts the SVG content of id into a component module.
// It returns a nil Result and nil error when the filter rejects id.
func (p *Plugin) Transform(ctx context.Context, content, id string, opts ...CallOption) (*Result, error) {
	if !p.filter.Match(id) {
		return nil, nil
	}

	cfg := &callConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	p.deprecations.flush(cfg.warn)

	cleaned := p.clean.Clean(ctx, content)
	if cleaned == nil {
		return nil, &CleanFunctionError{ID: id}
	}
	svg, err := cleaned.await(ctx)
	if err != nil {
		return nil, &CleanFunctionError{ID: id, Cause: err}
	}

	doc, err := splitDocument(id, svg)
	if err != nil {
		return nil, err
	}

	return &Result{
		Code: generate(p.library, doc),
		Map:  EmptySourceMap,
	}, nil
}
