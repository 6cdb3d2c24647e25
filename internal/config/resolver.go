package config

import (
	"fmt"
	"os"

	"github.com/opmodel/svgi/internal/output"
	"github.com/opmodel/svgi/internal/svgi"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// Resolved is a configuration value and the source it was taken from.
type Resolved[T any] struct {
	// Key is the config key.
	Key string
	// Value is the winning value.
	Value T
	// Source indicates where Value came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]T
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) SVGI_CONFIG env, (3) ./svgi.yaml
func ResolveConfigPath(opts ResolveConfigPathOptions) (Resolved[string], error) {
	result := Resolved[string]{
		Key:      "config",
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv("SVGI_CONFIG")
	defaultPath, err := DefaultConfigFile()
	if err != nil {
		return result, err
	}

	switch {
	case opts.FlagValue != "":
		result.Value = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.Value = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.Value = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// FlagValues carries the global transform flags. Changed reports whether a
// flag was set on the command line; unchanged flags never win.
type FlagValues struct {
	Library       string
	Factory       string
	Pragma        string
	DefaultImport bool
	Include       []string
	Exclude       []string
	Clean         string
	Timestamps    bool
	Changed       func(name string) bool
}

func (f FlagValues) changed(name string) bool {
	return f.Changed != nil && f.Changed(name)
}

// ResolvedConfig holds every transform setting after applying precedence
// flag > env > config > default.
type ResolvedConfig struct {
	ConfigPath        Resolved[string]
	TargetLibrary     Resolved[string]
	FactoryExpression Resolved[string]
	PragmaExpression  Resolved[string]
	IsDefaultImport   Resolved[*bool]
	Include           Resolved[[]string]
	Exclude           Resolved[[]string]
	Clean             Resolved[string]
	CleanCommand      Resolved[[]string]
	Timestamps        Resolved[*bool]
	Deprecations      []svgi.Deprecation
}

// ResolveAll applies flag precedence over a loaded Config. cfg may be nil.
func ResolveAll(configPath Resolved[string], flags FlagValues, cfg *Config) *ResolvedConfig {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &ResolvedConfig{
		ConfigPath:        configPath,
		TargetLibrary:     resolve("targetLibrary", flags.Library, flags.changed("library"), cfg.TargetLibrary, cfg.Source("targetLibrary"), ""),
		FactoryExpression: resolve("factoryExpression", flags.Factory, flags.changed("factory"), cfg.FactoryExpression, cfg.Source("factoryExpression"), ""),
		PragmaExpression:  resolve("pragmaExpression", flags.Pragma, flags.changed("pragma"), cfg.PragmaExpression, cfg.Source("pragmaExpression"), ""),
		IsDefaultImport:   resolve("isDefaultImport", output.BoolPtr(flags.DefaultImport), flags.changed("default-import"), cfg.IsDefaultImport, cfg.Source("isDefaultImport"), (*bool)(nil)),
		Include:           resolve("include", flags.Include, flags.changed("include"), cfg.Include, cfg.Source("include"), svgi.DefaultInclude),
		Exclude:           resolve("exclude", flags.Exclude, flags.changed("exclude"), cfg.Exclude, cfg.Source("exclude"), []string(nil)),
		Clean:             resolve("clean", flags.Clean, flags.changed("clean"), cfg.Clean, cfg.Source("clean"), CleanDefault),
		CleanCommand:      resolve("cleanCommand", []string(nil), false, cfg.CleanCommand, cfg.Source("cleanCommand"), []string(nil)),
		Timestamps:        resolve("log.timestamps", output.BoolPtr(flags.Timestamps), flags.changed("timestamps"), cfg.Log.Timestamps, cfg.Source("log.timestamps"), (*bool)(nil)),
		Deprecations:      cfg.Deprecations,
	}
	return r
}

func resolve[T any](key string, flagValue T, flagSet bool, loaded T, loadedSource ConfigSource, def T) Resolved[T] {
	r := Resolved[T]{Key: key, Shadowed: make(map[ConfigSource]T)}
	switch {
	case flagSet:
		r.Value, r.Source = flagValue, SourceFlag
		if loadedSource != "" {
			r.Shadowed[loadedSource] = loaded
		}
	case loadedSource != "":
		r.Value, r.Source = loaded, loadedSource
	default:
		r.Value, r.Source = def, SourceDefault
	}
	return r
}

// Options converts the resolved settings into plugin options. baseDir
// anchors relative patterns and is the working directory of a clean command.
func (r *ResolvedConfig) Options(baseDir string) (svgi.Options, error) {
	cleaner, err := Cleaner(r.Clean.Value, r.CleanCommand.Value, baseDir)
	if err != nil {
		return svgi.Options{}, err
	}

	return svgi.Options{
		Library:      r.TargetLibrary.Value,
		Factory:      r.FactoryExpression.Value,
		Pragma:       r.PragmaExpression.Value,
		IsDefault:    r.IsDefaultImport.Value,
		Clean:        cleaner,
		Include:      r.Include.Value,
		Exclude:      r.Exclude.Value,
		BaseDir:      baseDir,
		Deprecations: r.Deprecations,
	}, nil
}

// LogResolvedValues logs each resolution at DEBUG level.
func (r *ResolvedConfig) LogResolvedValues() {
	logResolved(r.ConfigPath)
	logResolved(r.TargetLibrary)
	logResolved(r.FactoryExpression)
	logResolved(r.PragmaExpression)
	logResolved(r.IsDefaultImport)
	logResolved(r.Include)
	logResolved(r.Exclude)
	logResolved(r.Clean)
	logResolved(r.CleanCommand)
	logResolved(r.Timestamps)
}

func logResolved[T any](v Resolved[T]) {
	output.Debug("config value resolved",
		"key", v.Key,
		"value", display(v.Value),
		"source", v.Source,
	)
	for source, shadowed := range v.Shadowed {
		output.Debug("  shadowed by higher precedence",
			"key", v.Key,
			"shadowed_source", source,
			"shadowed_value", display(shadowed),
		)
	}
}

func display(v any) string {
	if b, ok := v.(*bool); ok {
		if b == nil {
			return "<unset>"
		}
		return fmt.Sprint(*b)
	}
	return fmt.Sprint(v)
}
