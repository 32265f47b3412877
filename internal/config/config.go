package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultURL is used when neither the config file nor the store has a
// daemon address.
const DefaultURL = "http://127.0.0.1:3000"

// Config holds file-backed defaults. Last-used values live in the session
// store and override these at startup.
type Config struct {
	URL        string `toml:"url"`
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	WorkingDir string `toml:"working_dir"`
	Verbose    bool   `toml:"verbose"`
}

// Dir returns the tether config directory, creating it if needed.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "tether")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads config.toml from the config directory. A missing file yields
// defaults.
func Load() (Config, error) {
	cfg := Config{URL: DefaultURL}

	dir, err := Dir()
	if err != nil {
		return cfg, err
	}

	path := filepath.Join(dir, "config.toml")
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	return cfg, nil
}
