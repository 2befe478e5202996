// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "GOKANETR_LOG_LEVEL"

// Profile selects the logger defaults.
type Profile int

const (
	// ProfileRuntime logs JSON at info level.
	ProfileRuntime Profile = iota
	// ProfileTest logs human-readable lines at debug level.
	ProfileTest
)

// Options configures a logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty keeps the profile default.
	Level string
	// Format is json or console. Empty keeps the profile default.
	Format string
	// Verbose forces debug level.
	Verbose bool
}

// New builds a logger for profile, applying opts and then the
// GOKANETR_LOG_LEVEL environment override.
func New(profile Profile, opts Options) (*zap.Logger, error) {
	cfg := defaultConfig(profile)

	if opts.Format != "" {
		switch strings.ToLower(opts.Format) {
		case "json":
			cfg.Encoding = "json"
		case "console", "text":
			cfg.Encoding = "console"
		default:
			return nil, fmt.Errorf("unknown log format %q", opts.Format)
		}
	}
	if opts.Level != "" {
		lvl, err := ParseLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if lvl, err := ParseLevel(raw); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func defaultConfig(profile Profile) zap.Config {
	if profile == ProfileTest {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return cfg
}

// ParseLevel parses a level name. "trace" is accepted as debug.
func ParseLevel(raw string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace", "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", raw)
	}
}
