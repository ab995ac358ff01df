package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PROXYPRINT_API_BASE_URL", "PROXYPRINT_DATASET", "PROXYPRINT_FRESHNESS_DAYS",
		"PROXYPRINT_DATA_DIR", "PROXYPRINT_CACHE_DIR", "PROXYPRINT_USER_AGENT",
		"PROXYPRINT_HTTP_TIMEOUT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadCreatesDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "proxyprint", "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = os.Stat(path)
	assert.NoError(t, err, "default config file should be written")
}

func TestLoadReadsFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "api_base_url = \"http://localhost:9999/\"\nfreshness_days = 0\nhttp_timeout = \"30s\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/", cfg.APIBaseURL)
	assert.Equal(t, 0, cfg.FreshnessDays)
	assert.Equal(t, "Oracle Cards", cfg.Dataset, "unset keys keep defaults")
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Default().Save(path))

	dataDir := t.TempDir()
	t.Setenv("PROXYPRINT_DATA_DIR", dataDir)
	t.Setenv("PROXYPRINT_FRESHNESS_DAYS", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.CatalogDir())
	assert.Equal(t, 3, cfg.FreshnessDays)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative freshness", mutate: func(c *Config) { c.FreshnessDays = -1 }, wantErr: true},
		{name: "empty base url", mutate: func(c *Config) { c.APIBaseURL = "" }, wantErr: true},
		{name: "bad timeout", mutate: func(c *Config) { c.HTTPTimeout = "soon" }, wantErr: true},
		{name: "zero freshness", mutate: func(c *Config) { c.FreshnessDays = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDirsFollowXDG(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	cfg := Default()
	assert.Equal(t, filepath.Join("/xdg/data", "proxyprint"), cfg.CatalogDir())
	assert.Equal(t, filepath.Join("/xdg/cache", "proxyprint", "images"), cfg.ImageCacheDir())
}
