package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	for _, k := range []string{"API_PORT", "API_ENV", "LOG_LEVEL", "LOG_FORMAT", "ASSET_DIR", "DATA_DIR", "STATIC_DIR", "ENABLE_SERIES_CACHE", "SERIES_CACHE_TTL", "CORS_ALLOWED_ORIGINS"} {
		unsetenv(t, k)
	}
	s, err := LoadServer(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "./examples/assets", s.AssetDir)
	assert.Equal(t, "./data", s.DataDir)
	assert.True(t, s.EnableSeriesCache)
	assert.Equal(t, time.Hour, s.SeriesCacheTTL)
	assert.Equal(t, []string{"*"}, s.AllowedOrigins)
	assert.False(t, s.Production())
}

func TestLoadServer_EnvFileAndOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	writeFile(t, envFile, "API_PORT=9000\nLOG_FORMAT=json\n")
	unsetenv(t, "API_PORT")
	unsetenv(t, "LOG_FORMAT")
	t.Setenv("API_ENV", "production")
	t.Setenv("ENABLE_SERIES_CACHE", "false")
	t.Setenv("SERIES_CACHE_TTL", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	s, err := LoadServer(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9000", s.Port)
	assert.Equal(t, "json", s.LogFormat)
	assert.True(t, s.Production())
	assert.False(t, s.EnableSeriesCache)
	assert.Equal(t, 15*time.Minute, s.SeriesCacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, s.AllowedOrigins)
}

func TestLoadServer_BadValues(t *testing.T) {
	t.Setenv("ENABLE_SERIES_CACHE", "maybe")
	_, err := LoadServer(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	unsetenv(t, "ENABLE_SERIES_CACHE")
	t.Setenv("SERIES_CACHE_TTL", "soon")
	_, err = LoadServer(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

// unsetenv removes key for the test and restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
