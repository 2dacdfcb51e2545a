// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/lauralie13/Spy-Academy/internal/llm"
)

// Config is the full runtime configuration for spyacademy.
type Config struct {
	// DBPath overrides the default XDG database location.
	DBPath string `env:"SPYACADEMY_DB"`
	// ContentDir loads a content pack from disk instead of the embedded one.
	ContentDir string `env:"SPYACADEMY_CONTENT_DIR"`

	LogMode  string `env:"SPYACADEMY_LOG_MODE"  envDefault:"dev"`
	LogLevel string `env:"SPYACADEMY_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"SPYACADEMY_LOG_FILE"`

	// SnapshotKeep is how many progress snapshots survive pruning.
	SnapshotKeep int `env:"SPYACADEMY_AUTOSAVE_KEEP" envDefault:"20"`

	LLM llm.Config `envPrefix:"SPYACADEMY_LLM_"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SnapshotKeep < 1 {
		cfg.SnapshotKeep = 1
	}
	if cfg.LLM.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			discovered.Timeout = cfg.LLM.Timeout
			discovered.Retry = cfg.LLM.Retry
			cfg.LLM = discovered
		}
	}
	return cfg, nil
}

// DataDir returns the spyacademy data directory:
// $XDG_DATA_HOME/spyacademy, falling back to ~/.local/share/spyacademy.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "spyacademy"), nil
}

// ResolveDBPath picks the database path: explicit flag value, then
// SPYACADEMY_DB, then the data dir. The parent directory is created.
func (c Config) ResolveDBPath(flagValue string) (string, error) {
	p := flagValue
	if p == "" {
		p = c.DBPath
	}
	if p == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "spyacademy.db")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return p, nil
}

// ResolveLogFile returns the log destination for the TUI. Interactive
// sessions always log to a file; an empty result means stderr.
func (c Config) ResolveLogFile(interactive bool) (string, error) {
	if c.LogFile != "" || !interactive {
		return c.LogFile, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "spyacademy.log"), nil
}
