package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFiles(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(noEnvFiles(t))
	require.NoError(t, err)

	assert.Equal(t, "https://tdoserver.azurewebsites.net", cfg.APIURL)
	assert.Equal(t, "https://authgen.azurewebsites.net", cfg.AuthURL)
	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 500, cfg.LookupPageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.LogCalls)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".tradie", "tradie.db"), cfg.DBPath)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TRADIE_API_URL", "http://localhost:5000/")
	t.Setenv("TRADIE_PAGE_SIZE", "50")
	t.Setenv("TRADIE_SEARCH_DEBOUNCE", "1s")
	t.Setenv("TRADIE_DB", "/tmp/custom.db")
	t.Setenv("TRADIE_LOG_CALLS", "true")

	cfg, err := Load(noEnvFiles(t))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, time.Second, cfg.SearchDebounce)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.True(t, cfg.LogCalls)
}

func TestLoad_EnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("TRADIE_PAGE_SIZE=35\nTRADIE_LOOKUP_PAGE_SIZE=100\n"), 0o600))

	t.Setenv("TRADIE_PAGE_SIZE", "40")
	// Registered so the value loaded from the file is cleared after the test.
	t.Setenv("TRADIE_LOOKUP_PAGE_SIZE", "")
	require.NoError(t, os.Unsetenv("TRADIE_LOOKUP_PAGE_SIZE"))

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.PageSize)
	assert.Equal(t, 100, cfg.LookupPageSize)
}

func TestLoadEnv_SkipsMissingFiles(t *testing.T) {
	n, err := LoadEnv([]string{noEnvFiles(t)})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestValidate(t *testing.T) {
	valid := Config{
		APIURL:         "https://api.example.com",
		AuthURL:        "http://auth.example.com",
		PageSize:       20,
		LookupPageSize: 500,
		Timeout:        time.Second,
		LogLevel:       "info",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"ftp api url", func(c *Config) { c.APIURL = "ftp://x" }, "TRADIE_API_URL"},
		{"bare auth host", func(c *Config) { c.AuthURL = "auth.example.com" }, "TRADIE_AUTH_URL"},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, "TRADIE_PAGE_SIZE"},
		{"negative lookup size", func(c *Config) { c.LookupPageSize = -1 }, "TRADIE_LOOKUP_PAGE_SIZE"},
		{"negative debounce", func(c *Config) { c.SearchDebounce = -time.Second }, "TRADIE_SEARCH_DEBOUNCE"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "TRADIE_TIMEOUT"},
		{"unknown level", func(c *Config) { c.LogLevel = "chatty" }, "TRADIE_LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tradie.log")
	cfg := Config{LogLevel: "info"}

	logger, err := cfg.Logger(path)
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
