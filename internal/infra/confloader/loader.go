package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/yndnr/corekit-go/internal/config"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "COREKIT_"

// Loader merges configuration sources into a config.Config.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
	loaded    bool
}

// Option configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithOverrides sets programmatic overrides applied after env loading.
// Keys use dotted notation, e.g. "thread.stop_timeout".
func WithOverrides(data map[string]any) Option {
	return func(l *Loader) {
		l.overrides = data
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load builds a verified config.Config from all sources.
// Later sources override earlier ones:
//  1. Package defaults
//  2. Configuration file (YAML), if set
//  3. Environment variables
//  4. Programmatic overrides
func (l *Loader) Load() (*config.Config, error) {
	cfg := config.Default()

	if l.filePath != "" {
		if err := l.LoadFile(l.filePath); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := l.LoadEnv(); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	if l.overrides != nil {
		if err := l.LoadMap(l.overrides); err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	if err := l.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("verify config: %w", err)
	}

	l.loaded = true
	return cfg, nil
}

// LoadFile merges a YAML file into the loader.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}

	return nil
}

// LoadEnv merges environment variables into the loader.
// Variables use the format COREKIT_SECTION_KEY (uppercase, underscores).
// Example: COREKIT_LOG_LEVEL=debug maps to log.level.
func (l *Loader) LoadEnv() error {
	// COREKIT_LOG_LEVEL -> log.level
	// Section names contain no underscores, so the first underscore
	// after the prefix separates section from key; the key keeps any
	// further underscores (stop_timeout, initial_slots).
	envTransformer := func(s string) string {
		s = strings.TrimPrefix(s, l.envPrefix)
		s = strings.ToLower(s)
		section, key, found := strings.Cut(s, "_")
		if !found {
			return section
		}
		return section + "." + key
	}

	provider := env.Provider(l.envPrefix, ".", envTransformer)
	if err := l.k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	return nil
}

// LoadMap merges a dotted-key map into the loader.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(overrideProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// Unmarshal unmarshals the merged configuration into target using koanf tags.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// GetString returns a string value by dotted key.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// GetInt returns an int value by dotted key.
func (l *Loader) GetInt(key string) int {
	return l.k.Int(key)
}

// IsLoaded reports whether Load has completed successfully.
func (l *Loader) IsLoaded() bool {
	return l.loaded
}

// Keys returns all merged configuration keys.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}
