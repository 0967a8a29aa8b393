// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Backend.Addr != Default().Backend.Addr {
		t.Errorf("Backend.Addr = %q, want default", cfg.Backend.Addr)
	}
	if cfg.Server.Port != 64738 {
		t.Errorf("Server.Port = %d, want 64738", cfg.Server.Port)
	}
}

func TestLoadFromPathReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
log_level = "debug"

[backend]
addr = "wss://bridge.local:9002/ws"
connect_timeout_secs = 5

[server]
host = "mumble.example.com"
port = 64740
username = "alice"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Backend.Addr != "wss://bridge.local:9002/ws" {
		t.Errorf("Backend.Addr = %q", cfg.Backend.Addr)
	}
	if cfg.Server.Host != "mumble.example.com" || cfg.Server.Port != 64740 || cfg.Server.Username != "alice" {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MUMBLE_TUI_BACKEND_ADDR", "ws://override:9999/ws")
	t.Setenv("MUMBLE_TUI_LOG_LEVEL", "warn")
	t.Setenv("MUMBLE_TUI_SERVER_PORT", "12345")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Backend.Addr != "ws://override:9999/ws" {
		t.Errorf("Backend.Addr = %q, want env override", cfg.Backend.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Server.Port != 12345 {
		t.Errorf("Server.Port = %d, want 12345", cfg.Server.Port)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty backend addr", func(c *Config) { c.Backend.Addr = "" }},
		{"http backend addr", func(c *Config) { c.Backend.Addr = "http://example.com" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero timeout", func(c *Config) { c.Backend.ConnectTimeoutSecs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/tmp/custom"
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir() error = %v", err)
	}
	if dir != "/tmp/custom" {
		t.Errorf("ResolveDataDir() = %q, want /tmp/custom", dir)
	}
}
