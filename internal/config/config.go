// Package config loads the discover CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the persisted CLI configuration.
type Config struct {
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// StorePath is the default DuckDB events database the export command
	// reads from when --db is not given.
	StorePath string `yaml:"store_path"`
	// Projects is the default project scope applied to new views.
	Projects []int64 `yaml:"projects"`
	// Environments is the default environment scope applied to new views.
	Environments []string `yaml:"environments"`
	// Features lists enabled feature flags gating optional fields and
	// aggregates (e.g. discover-tracing).
	Features []string `yaml:"features"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// FeatureFlags converts the enabled feature list into a lookup map.
func (c *Config) FeatureFlags() map[string]bool {
	flags := make(map[string]bool, len(c.Features))
	for _, f := range c.Features {
		flags[f] = true
	}
	return flags
}

// Validate checks field values, not file presence.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	for _, id := range c.Projects {
		if id < 0 {
			return fmt.Errorf("invalid project id %d", id)
		}
	}
	return nil
}

// Path resolves the config file location:
//  1. DISCOVER_CONFIG environment variable (a directory).
//  2. ~/.discover/ under the user home directory.
//  3. /tmp/discover-fallback for containers without a home directory.
func Path() string {
	if baseDir := os.Getenv("DISCOVER_CONFIG"); baseDir != "" {
		return filepath.Join(baseDir, "config.yaml")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp/discover-fallback"
	}
	return filepath.Join(homeDir, ".discover", "config.yaml")
}

// Load reads the configuration at path, falling back to defaults when the
// file does not exist, then applies environment overrides. An empty path
// uses Path().
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults plus env overrides.
	case err != nil:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides layers DISCOVER_* environment variables over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DISCOVER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DISCOVER_STORE"); v != "" {
		cfg.StorePath = v
	}
}
