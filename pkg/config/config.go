// Package config loads the trawler configuration from a YAML file. A missing
// file is not an error: every field has a usable default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	// Actor labels all reported outcome lines.
	Actor string `yaml:"actor"`

	Browser   BrowserConfig   `yaml:"browser"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// BrowserConfig controls session launch behavior.
type BrowserConfig struct {
	// Headless is the default window visibility for launch_browser.
	// Headed by default: the operator logs in to the target site by hand.
	Headless bool `yaml:"headless"`

	// ExecutablePath optionally pins a specific browser binary.
	ExecutablePath string `yaml:"executable_path"`
}

// SnapshotConfig controls the extraction pipeline.
type SnapshotConfig struct {
	// MaxChars caps sanitized snapshot output.
	MaxChars int `yaml:"max_chars"`
}

// DashboardConfig controls the status board HTTP server.
type DashboardConfig struct {
	// Addr is the listen address; empty disables the dashboard.
	Addr string `yaml:"addr"`

	// FeedSize bounds the recent-outcome feed.
	FeedSize int `yaml:"feed_size"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Actor: "trawler",
		Browser: BrowserConfig{
			Headless: false,
		},
		Snapshot: SnapshotConfig{
			MaxChars: 100_000,
		},
		Dashboard: DashboardConfig{
			Addr:     "127.0.0.1:8787",
			FeedSize: 50,
		},
	}
}

// DefaultPath returns ~/.trawler/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".trawler", "config.yaml"), nil
}

// Load reads the configuration at path, filling unset fields with defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Actor == "" {
		cfg.Actor = "trawler"
	}
	if cfg.Snapshot.MaxChars <= 0 {
		cfg.Snapshot.MaxChars = 100_000
	}
	if cfg.Dashboard.FeedSize <= 0 {
		cfg.Dashboard.FeedSize = 50
	}

	return cfg, nil
}
