package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
seed: 42
workers: 4
output: yaml
explain: true
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, OutputYAML, cfg.Output)
	assert.True(t, cfg.Explain)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json"}, cfg.Logging)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "run.toml", `
seed = 7
workers = 2

[logging]
level = "warn"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(7), *cfg.Seed)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, OutputText, cfg.Output, "defaults survive partial files")
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"run.json": `{}`,
		"bad.yaml": "output: html\n",
		"neg.toml": "workers = -1\n",
		"lvl.yaml": "logging:\n  level: loud\n",
		"fmt.yaml": "logging:\n  format: xml\n",
		"syn.toml": "seed = [\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, name, content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Nil(t, cfg.Seed)

	opts := cfg.LoggerOptions(true)
	assert.True(t, opts.Verbose)
	assert.Equal(t, "info", opts.Level)
}
