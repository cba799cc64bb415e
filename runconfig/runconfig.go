// Package runconfig provides configuration loading and access for the
// gorkovsim CLI: worker pool sizing, logging level, and output formatting.
package runconfig

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the ambient knobs for a gorkovsim run.
type Config struct {
	// Workers is the goroutine pool size used by every grid stage. 0 means
	// runtime.GOMAXPROCS(0).
	Workers int `yaml:"workers"`
	// ChunkSize is the number of cells handed to one worker per chunk. 0
	// means an even split of the cell count across Workers.
	ChunkSize int `yaml:"chunk_size"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// MetadataIndent is the json.MarshalIndent indent width for metadata.json.
	MetadataIndent int `yaml:"metadata_indent"`

	// Derived holds values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// DerivedConfig holds values computed from Config after loading.
type DerivedConfig struct {
	SlogLevel slog.Level
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("runconfig: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("runconfig: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("parsing log_level %q: %w", c.LogLevel, err)
	}
	c.Derived.SlogLevel = level
	return nil
}
