// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the Nova client.
//
// Configuration is read from ~/.nova/config.toml with built-in defaults
// and environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete Nova client configuration.
type Config struct {
	// API configuration
	API APIConfig `toml:"api"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Store configuration
	Store StoreConfig `toml:"store"`
}

// APIConfig contains chat backend configuration.
type APIConfig struct {
	// BaseURL is the chat backend base URL
	BaseURL string `toml:"base_url"`

	// RegisterTimeoutSecs bounds the registration request in seconds
	RegisterTimeoutSecs int `toml:"register_timeout_secs"`
}

// RegisterTimeout returns the registration timeout as a duration.
func (c APIConfig) RegisterTimeout() time.Duration {
	return time.Duration(c.RegisterTimeoutSecs) * time.Second
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the startup theme: "dark" or "light". A theme chosen at
	// runtime is remembered in the store and wins over this value.
	Theme string `toml:"theme"`
}

// StoreConfig contains local store configuration.
type StoreConfig struct {
	// Path is the SQLite database path (empty = ~/.nova/nova.db)
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:             "http://localhost:3001",
			RegisterTimeoutSecs: 10,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// SetDefaults fills in zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.RegisterTimeoutSecs <= 0 {
		c.API.RegisterTimeoutSecs = defaults.API.RegisterTimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// LOADING
// =============================================================================

// ConfigPath returns the configuration file path (~/.nova/config.toml).
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".nova", "config.toml"), nil
}

// Load reads the configuration file, applying defaults and environment
// overrides. A missing file is not an error; defaults are used.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.ApplyEnvOverrides()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if baseURL := os.Getenv("NOVA_API_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if theme := os.Getenv("NOVA_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url: scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid api.base_url: missing host")
	}

	theme := strings.ToLower(c.UI.Theme)
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("invalid ui.theme: must be dark or light, got %q", c.UI.Theme)
	}
	return nil
}
