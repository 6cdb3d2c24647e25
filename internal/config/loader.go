package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/opmodel/svgi/internal/svgi"
)

// Environment variable prefix for svgi configuration.
const envPrefix = "SVGI"

// envKeys maps config keys to their environment variables.
var envKeys = []struct {
	key string
	env string
}{
	{"targetLibrary", "SVGI_TARGET_LIBRARY"},
	{"factoryExpression", "SVGI_FACTORY_EXPRESSION"},
	{"pragmaExpression", "SVGI_PRAGMA_EXPRESSION"},
	{"isDefaultImport", "SVGI_IS_DEFAULT_IMPORT"},
	{"include", "SVGI_INCLUDE"},
	{"exclude", "SVGI_EXCLUDE"},
	{"clean", "SVGI_CLEAN"},
	{"cleanCommand", "SVGI_CLEAN_COMMAND"},
	{"log.timestamps", "SVGI_LOG_TIMESTAMPS"},
}

// legacyKeys lists the legacy keys in the order their notices are emitted.
var legacyKeys = []string{"jsx", "factory", "pragma", "default"}

// Loader handles loading and merging configuration from the config file and
// the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, k := range envKeys {
		_ = v.BindEnv(k.key, k.env)
	}

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses GetConfigFile. A missing file is not an
// error. Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	deprecations := l.applyLegacyKeys()

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Deprecations = deprecations
	cfg.sources = l.sources(deprecations)

	return &cfg, nil
}

// applyLegacyKeys copies legacy keys onto their replacements unless the
// replacement is set, and returns a notice for each legacy key present.
func (l *Loader) applyLegacyKeys() []svgi.Deprecation {
	var deps []svgi.Deprecation
	for _, legacy := range legacyKeys {
		if !l.v.InConfig(legacy) {
			continue
		}
		replacement := svgi.LegacyOptions[legacy]
		deps = append(deps, svgi.Deprecation{Option: legacy, Replacement: replacement})
		if !l.v.IsSet(replacement) {
			l.v.Set(replacement, l.v.Get(legacy))
		}
	}
	return deps
}

func (l *Loader) sources(deps []svgi.Deprecation) map[string]ConfigSource {
	sources := make(map[string]ConfigSource)
	for _, k := range envKeys {
		switch {
		case os.Getenv(k.env) != "":
			sources[k.key] = SourceEnv
		case l.v.InConfig(k.key):
			sources[k.key] = SourceConfig
		}
	}
	for _, d := range deps {
		if _, ok := sources[d.Replacement]; !ok {
			sources[d.Replacement] = SourceConfig
		}
	}
	return sources
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(expandedPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
