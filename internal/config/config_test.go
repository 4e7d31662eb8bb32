package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Cache.Driver)
	assert.Equal(t, "medclean.db", cfg.Cache.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 64, cfg.Anthropic.MaxTokens)
	assert.InDelta(t, 1.0, cfg.Anthropic.RatePerSecond, 0.001)
	assert.Equal(t, 100, cfg.Processing.SampleSize)
	assert.Equal(t, 50, cfg.Processing.BatchSize)
	assert.Equal(t, time.Second, cfg.Processing.BatchDelay())
	assert.False(t, cfg.Processing.EnableEnrichment)
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
cache:
  driver: postgres
  database_url: postgres://localhost/medclean
log:
  level: debug
  format: console
processing:
  row_limit: 500
  batch_size: 10
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Cache.Driver)
	assert.Equal(t, "postgres://localhost/medclean", cfg.Cache.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 500, cfg.Processing.RowLimit)
	assert.Equal(t, 10, cfg.Processing.BatchSize)
	// Defaults still apply for unset values
	assert.Equal(t, 100, cfg.Processing.SampleSize)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chTempDir(t)

	yaml := `
cache:
  driver: sqlite
log:
  level: debug
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("MEDCLEAN_CACHE_DRIVER", "postgres")
	t.Setenv("MEDCLEAN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Cache.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chTempDir(t)

	t.Setenv("MEDCLEAN_ANTHROPIC_MAX_TOKENS", "128")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Anthropic.MaxTokens)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

func TestValidateSQLite(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.Driver = "sqlite"
	cfg.Cache.Path = "terms.db"

	assert.NoError(t, cfg.Validate("clean"))
}

func TestValidatePostgresMissingURL(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.Driver = "postgres"

	err := cfg.Validate("clean")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cache.database_url is required")
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.Driver = "mysql"

	err := cfg.Validate("clean")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cache.driver must be sqlite or postgres")
}

func TestValidateEnrichRequiresKey(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.Driver = "sqlite"
	cfg.Cache.Path = "terms.db"

	err := cfg.Validate("enrich")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")

	cfg.Anthropic.Key = "sk-ant-key"
	assert.NoError(t, cfg.Validate("enrich"))
}

func TestValidateCleanWithEnrichmentEnabled(t *testing.T) {
	cfg := &Config{}
	cfg.Cache.Driver = "sqlite"
	cfg.Cache.Path = "terms.db"
	cfg.Processing.EnableEnrichment = true

	err := cfg.Validate("clean")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.key is required")
}
