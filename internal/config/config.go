// Package config loads the run configuration of the emphasize tool from
// YAML or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gokanetr/internal/logging"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config holds the emphasize tool configuration.
type Config struct {
	// Seed fixes the random source. Nil draws a fresh seed per run.
	Seed *uint64 `yaml:"seed" toml:"seed"`

	// Workers bounds batch concurrency; 0 means one per CPU.
	Workers int `yaml:"workers" toml:"workers"`

	// Output is text or yaml.
	Output string `yaml:"output" toml:"output"`

	// Explain prints the ranked candidates behind each decision.
	Explain bool `yaml:"explain" toml:"explain"`

	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // json, console
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Output: OutputText,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a configuration file. The format follows the extension:
// .yaml and .yml are YAML, .toml is TOML. Missing fields keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputYAML:
	default:
		return fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputYAML, c.Output)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// LoggerOptions converts the logging section for logging.New.
func (c Config) LoggerOptions(verbose bool) logging.Options {
	return logging.Options{
		Level:   c.Logging.Level,
		Format:  c.Logging.Format,
		Verbose: verbose,
	}
}
