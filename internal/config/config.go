// Package config handles eventdesk configuration.
//
// Configuration is read from a YAML file (created with defaults on first
// run) and then overridden by EVENTDESK_* environment variables, so a
// shell session can point the CLI at another backend without touching
// the file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the top-level client configuration.
type Config struct {
	// BaseURL is the backend's base URL.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`

	// TimeoutSeconds bounds each backend request.
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS"`

	// CacheTTLMinutes bounds how long cached records serve reads without
	// a refetch. Explicit invalidation after mutations applies regardless.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes" envconfig:"CACHE_TTL_MINUTES"`

	// Format is the default output format, "text" or "json".
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		BaseURL:         "http://localhost:8080",
		TimeoutSeconds:  10,
		CacheTTLMinutes: 5,
		Format:          "text",
	}
}

// Normalize fills missing or invalid values with defaults so partial
// configs still behave.
func (c *Config) Normalize() {
	def := Default()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.CacheTTLMinutes <= 0 {
		c.CacheTTLMinutes = def.CacheTTLMinutes
	}
	switch c.Format {
	case "text", "json":
	default:
		c.Format = def.Format
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "eventdesk.yaml"
	}
	return filepath.Join(home, ".config", "eventdesk", "config.yaml")
}

// Load reads the config file at path, creating it with defaults if it
// does not exist, then applies EVENTDESK_* environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	var cfg *Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg = &Config{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// First run: write defaults so the file is there to edit
		cfg = Default()
		if err := Save(path, cfg); err != nil {
			return cfg, err
		}
	default:
		return nil, err
	}

	if err := envconfig.Process("eventdesk", cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the configuration to path atomically (temp file + rename),
// creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".eventdesk-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
