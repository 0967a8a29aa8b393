// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for mumble-tui.
//
// Configuration is TOML with sensible defaults and environment
// variable overrides. The file lives at ~/.mumble-tui/config.toml and
// is watched for changes so edits apply without a restart.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete mumble-tui configuration.
type Config struct {
	// DataDir is the directory for the settings database, logs and the
	// sealing secret. Empty means ~/.mumble-tui.
	DataDir string `toml:"data_dir"`

	// LogLevel is the log verbosity: debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Backend holds the connection settings for the backend bridge.
	Backend BackendConfig `toml:"backend"`

	// Server holds default Mumble server connection details.
	Server ServerConfig `toml:"server"`
}

// BackendConfig configures the WebSocket bridge to the backend.
type BackendConfig struct {
	// Addr is the WebSocket endpoint of the backend process.
	Addr string `toml:"addr"`

	// ConnectTimeoutSecs bounds how long dialing the backend may take.
	ConnectTimeoutSecs int `toml:"connect_timeout_secs"`
}

// ServerConfig holds the default Mumble server to offer at the connect
// screen. All fields may be overridden interactively.
type ServerConfig struct {
	// Host is the Mumble server hostname.
	Host string `toml:"host"`

	// Port is the Mumble server port.
	Port uint16 `toml:"port"`

	// Username is the name to connect with.
	Username string `toml:"username"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Backend: BackendConfig{
			Addr:               "ws://127.0.0.1:9001/ws",
			ConnectTimeoutSecs: 10,
		},
		Server: ServerConfig{
			Port: 64738,
		},
	}
}

// ConnectTimeout returns the backend dial timeout as a duration.
func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.Backend.ConnectTimeoutSecs) * time.Second
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the mumble-tui configuration directory.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mumble-tui"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ResolveDataDir returns the effective data directory, falling back to
// the config directory when DataDir is not set.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return ConfigDir()
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default config file, falling back
// to defaults when the file does not exist. Environment overrides are
// applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from the given TOML file. A missing
// file is not an error: defaults are used.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies MUMBLE_TUI_* environment variables over
// the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MUMBLE_TUI_BACKEND_ADDR"); v != "" {
		c.Backend.Addr = v
	}
	if v := os.Getenv("MUMBLE_TUI_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MUMBLE_TUI_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("MUMBLE_TUI_SERVER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("MUMBLE_TUI_SERVER_PORT"); v != "" {
		if port, err := strconv.ParseUint(v, 10, 16); err == nil {
			c.Server.Port = uint16(port)
		}
	}
	if v := os.Getenv("MUMBLE_TUI_USERNAME"); v != "" {
		c.Server.Username = v
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	addr := c.Backend.Addr
	if addr == "" {
		errs = append(errs, errors.New("backend.addr: must not be empty"))
	} else if !strings.HasPrefix(addr, "ws://") && !strings.HasPrefix(addr, "wss://") {
		errs = append(errs, fmt.Errorf("backend.addr: %q is not a ws:// or wss:// URL", addr))
	}

	if c.Backend.ConnectTimeoutSecs <= 0 {
		errs = append(errs, errors.New("backend.connect_timeout_secs: must be positive"))
	}

	return errors.Join(errs...)
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
