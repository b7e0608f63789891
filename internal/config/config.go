package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds tool-wide defaults. The CLI layer overrides per-run values
// with flags.
type Config struct {
	DBPath         string   `toml:"db_path"`
	OutputPrefix   string   `toml:"output_prefix"`
	DefaultFormats []string `toml:"default_formats"`
	ChainDepth     int      `toml:"chain_depth"`
}

// Load reads ~/.config/dmx/config.toml over compiled-in defaults. A
// missing file is fine; a malformed one is fatal.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:         filepath.Join(home, ".config", "dmx", "dmx.db"),
		OutputPrefix:   "discord_export",
		DefaultFormats: []string{"txt"},
		ChainDepth:     5,
	}

	cfgPath := filepath.Join(home, ".config", "dmx", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.OutputPrefix = expandHome(cfg.OutputPrefix, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
