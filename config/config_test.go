package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 5, cfg.CacheTTLMinutes)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.NotEmpty(t, cfg.DataDir)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL_MINUTES", "30")
	t.Setenv("ADVICE_PROVIDER", "GEMINI")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := DefaultConfig()

	assert.Equal(t, ":9999", cfg.ServerAddr)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 30, cfg.CacheTTLMinutes)
	assert.Equal(t, "gemini", cfg.AdviceProvider, "provider name is lowercased")
	assert.Equal(t, "g-key", cfg.GeminiAPIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestDataDirDerivesPaths(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/mitra-test")

	cfg := DefaultConfig()

	assert.Equal(t, "/tmp/mitra-test", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/mitra-test", "cache"), cfg.DataCacheDir)
	assert.Equal(t, filepath.Join("/tmp/mitra-test", "stockmitra.db"), cfg.DatabasePath)
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AdviceProvider = "astrology"

	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheTTLMinutes = 0

	assert.Error(t, cfg.Validate())
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.DataCacheDir = filepath.Join(dir, "data", "cache")
	cfg.DatabasePath = filepath.Join(dir, "data", "db", "stockmitra.db")

	require.NoError(t, cfg.EnsureDirectories())

	assert.DirExists(t, cfg.DataDir)
	assert.DirExists(t, cfg.DataCacheDir)
	assert.DirExists(t, filepath.Join(dir, "data", "db"))
}
