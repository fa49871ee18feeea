// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3001" {
		t.Errorf("expected default base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.RegisterTimeout() != 10*time.Second {
		t.Errorf("expected 10s register timeout, got %v", cfg.API.RegisterTimeout())
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected dark default theme, got %q", cfg.UI.Theme)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
base_url = "https://chat.example.com"
register_timeout_secs = 30

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.API.BaseURL != "https://chat.example.com" {
		t.Errorf("expected file base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.RegisterTimeoutSecs != 30 {
		t.Errorf("expected 30s register timeout, got %d", cfg.API.RegisterTimeoutSecs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected light theme, got %q", cfg.UI.Theme)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"light\"\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3001" {
		t.Errorf("expected default base URL for partial config, got %q", cfg.API.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected light theme, got %q", cfg.UI.Theme)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("NOVA_API_URL", "http://10.0.0.5:4000")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:4000" {
		t.Errorf("expected env override, got %q", cfg.API.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://example.com" }, true},
		{"missing host", func(c *Config) { c.API.BaseURL = "http://" }, true},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"light theme", func(c *Config) { c.UI.Theme = "light" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
