package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	APIBaseURL    string `toml:"api_base_url" env:"PROXYPRINT_API_BASE_URL"`
	Dataset       string `toml:"dataset" env:"PROXYPRINT_DATASET"`
	FreshnessDays int    `toml:"freshness_days" env:"PROXYPRINT_FRESHNESS_DAYS"`
	DataDir       string `toml:"data_dir" env:"PROXYPRINT_DATA_DIR"`
	CacheDir      string `toml:"cache_dir" env:"PROXYPRINT_CACHE_DIR"`
	UserAgent     string `toml:"user_agent" env:"PROXYPRINT_USER_AGENT"`
	HTTPTimeout   string `toml:"http_timeout" env:"PROXYPRINT_HTTP_TIMEOUT"`
}

// Default returns the configuration written on first use.
func Default() *Config {
	return &Config{
		APIBaseURL:    "https://api.scryfall.com/",
		Dataset:       "Oracle Cards",
		FreshnessDays: 1,
		UserAgent:     "proxyprint/0.1",
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "proxyprint", "config.toml")
}

// CatalogDir returns the directory holding the catalog snapshot.
func (c *Config) CatalogDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(GetXDGDataHome(), "proxyprint")
}

// ImageCacheDir returns the root of the per-mode image cache.
func (c *Config) ImageCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return filepath.Join(GetXDGCacheHome(), "proxyprint", "images")
}

// Timeout returns the per-request HTTP timeout; zero means none.
func (c *Config) Timeout() time.Duration {
	if c.HTTPTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks value ranges after file and environment have been applied.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.Dataset == "" {
		return fmt.Errorf("dataset must not be empty")
	}
	if c.FreshnessDays < 0 {
		return fmt.Errorf("freshness_days must be >= 0, got %d", c.FreshnessDays)
	}
	if c.HTTPTimeout != "" {
		d, err := time.ParseDuration(c.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid http_timeout %q: %v", c.HTTPTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("http_timeout must not be negative")
		}
	}
	return nil
}

// LoadConfig loads the config file at the default location
func LoadConfig() (*Config, error) {
	return Load(GetConfigFilePath())
}

// Load reads the config file at path, creating it with defaults if missing,
// then applies PROXYPRINT_* environment overrides.
func Load(configPath string) (*Config, error) {
	var config *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config, err = createDefaultConfig(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		config = Default()
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %v", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	// Ensure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %v", err)
	}

	config := Default()
	if err := config.Save(configPath); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the config to path as TOML.
func (c *Config) Save(configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}
