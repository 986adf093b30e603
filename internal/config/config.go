package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"linite/internal/catalog"
	"linite/internal/install"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the optional user settings
type Config struct {
	Catalog           string `toml:"catalog"`            // Path to the app catalog
	FlatpakRemote     string `toml:"flatpak_remote"`     // Remote passed to flatpak install
	PreferredTerminal string `toml:"preferred_terminal"` // Probed before the built-in list
	Debug             bool   `toml:"debug"`              // Write a debug log
	LogFile           string `toml:"log_file"`           // Debug log location
}

// configFileName is the name of the config file
const configFileName = "config.toml"

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Catalog:       catalog.DefaultPath,
		FlatpakRemote: install.DefaultRemote,
		LogFile:       filepath.Join(ConfigDir(), "linite.log"),
	}
}

// ConfigDir returns the directory containing linite config files
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "linite")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// fillDefaults restores values a config file explicitly blanked
func (c *Config) fillDefaults() {
	def := Default()
	if c.Catalog == "" {
		c.Catalog = def.Catalog
	}
	if c.FlatpakRemote == "" {
		c.FlatpakRemote = def.FlatpakRemote
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
}
