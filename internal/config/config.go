// Package config loads the printer CLI configuration file.
//
// The file supplies the same two values the command-line flags do (server
// URL and API key) so scripted use does not have to repeat them. It is read
// once at startup and never consulted by the client library itself.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields the CLI reads from its config file.
type Config struct {
	URL          string
	APIKey       string
	PollInterval int
}

const (
	defaultConfigPath   = "~/.config/printer/config.toml"
	defaultPollInterval = 2
)

// DefaultPath returns the config file location used when no --config flag
// is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config file. A missing file is not an error:
// the zero values come back and flags may still supply everything. A file
// that exists but does not parse is an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{PollInterval: defaultPollInterval}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		URL          string `toml:"url"`
		APIKey       string `toml:"api_key"`
		PollInterval int    `toml:"poll_interval"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
	}

	cfg.URL = strings.TrimSpace(raw.URL)
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	if raw.PollInterval > 0 {
		cfg.PollInterval = raw.PollInterval
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
