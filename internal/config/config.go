package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "csvplay"

const (
	defaultBufferMs = 100
	minBufferMs     = 10
	maxBufferMs     = 1000
)

type Config struct {
	PlaylistDir  string `koanf:"playlist_dir"`   // where <name>.csv files live (default: cwd)
	LogLevel     string `koanf:"log_level"`      // "debug", "info", "warn" or "error"
	ShuffleSeed  uint64 `koanf:"shuffle_seed"`   // 0 picks a new seed every run
	WaitForTrack bool   `koanf:"wait_for_track"` // block the menu until the track ends
	AlignColumns bool   `koanf:"align_columns"`  // pad titles when listing the playlist
	BufferMs     int    `koanf:"buffer_ms"`      // speaker buffer (10-1000, default: 100)
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		LogLevel:     "warn",
		AlignColumns: true,
		BufferMs:     defaultBufferMs,
	}
}

// Load reads the user config, then ./config.toml, then any extra files.
// Later files win.
func Load(extra ...string) (*Config, error) {
	return LoadFrom(append(getConfigPaths(), extra...)...)
}

// LoadFrom reads the given TOML files in order. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in playlist_dir
	if cfg.PlaylistDir != "" {
		cfg.PlaylistDir = expandPath(cfg.PlaylistDir)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/csvplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// Buffer returns the speaker buffer length with bounds applied.
func (c *Config) Buffer() time.Duration {
	ms := c.BufferMs
	switch {
	case ms <= 0:
		ms = defaultBufferMs
	case ms < minBufferMs:
		ms = minBufferMs
	case ms > maxBufferMs:
		ms = maxBufferMs
	}
	return time.Duration(ms) * time.Millisecond
}
