package app

import (
	"fmt"
	"os"
	"path/filepath"

	"wpm/internal/config"
)

// Config holds the daemon's runtime configuration: where unit files live,
// where the resource cache and per-unit logs are written, and how clients
// reach the control server.
type Config struct {
	// UnitDir is the directory unit files are loaded from. Defaults to
	// config.DefaultUnitDir() when empty.
	UnitDir string

	// StateRoot is the local-data root the resource store and log
	// directory are rooted under. Defaults to DefaultStateRoot() when
	// empty.
	StateRoot string

	// Endpoint is the control server's bind/dial address: a named pipe
	// path on Windows, a Unix socket path elsewhere. Defaults to
	// DefaultEndpoint() when empty.
	Endpoint string

	Debug bool
}

// NewConfig builds a Config, applying defaults for any empty field.
func NewConfig(unitDir, stateRoot, endpoint string, debug bool) (*Config, error) {
	cfg := &Config{UnitDir: unitDir, StateRoot: stateRoot, Endpoint: endpoint, Debug: debug}

	if cfg.UnitDir == "" {
		dir, err := config.DefaultUnitDir()
		if err != nil {
			return nil, err
		}
		cfg.UnitDir = dir
	}
	if cfg.StateRoot == "" {
		root, err := DefaultStateRoot()
		if err != nil {
			return nil, err
		}
		cfg.StateRoot = root
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint()
	}
	return cfg, nil
}

// DefaultStateRoot returns $LOCALAPPDATA\wpm (or the nearest equivalent
// reported by os.UserCacheDir on other platforms), the root the resource
// store and per-unit logs live under.
func DefaultStateRoot() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("could not determine local app data directory: %w", err)
	}
	return filepath.Join(dir, "wpm"), nil
}

// LogDir returns the per-unit log capture directory under StateRoot.
func (c *Config) LogDir() string {
	return filepath.Join(c.StateRoot, "logs")
}

// ResourceStoreRoot returns the resource cache directory under StateRoot.
func (c *Config) ResourceStoreRoot() string {
	return filepath.Join(c.StateRoot, "cache")
}
