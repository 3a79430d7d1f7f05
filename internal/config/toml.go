// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Session SessionConfig `toml:"session"`
	Answers AnswersConfig `toml:"answers"`
}

// SessionConfig maps drill session settings.
type SessionConfig struct {
	Mode      *string `toml:"mode"`
	Questions *int    `toml:"questions"`
}

// AnswersConfig maps answer-checking settings.
type AnswersConfig struct {
	// NoSiblings lists the free-recall answers accepted for a person
	// with no siblings.
	NoSiblings *[]string `toml:"no-siblings"`
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
