// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Cipher   CipherConfig   `toml:"cipher"`
	Analysis AnalysisConfig `toml:"analysis"`
	History  HistoryConfig  `toml:"history"`
	Log      LogConfig      `toml:"log"`
}

// CipherConfig maps cipher-related settings.
type CipherConfig struct {
	Mode  *string `toml:"mode"`
	Key   *string `toml:"key"`
	Shift *int    `toml:"shift"`
}

// AnalysisConfig maps frequency analysis settings.
type AnalysisConfig struct {
	CaseSensitive *bool   `toml:"case-sensitive"`
	WordList      *string `toml:"wordlist"`
}

// HistoryConfig maps run history settings.
type HistoryConfig struct {
	Enabled *bool `toml:"enabled"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
