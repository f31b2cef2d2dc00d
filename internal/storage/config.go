package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// configFile is the name of the user configuration file in the data dir.
	configFile = "config.yaml"

	// Default configuration values
	DefaultBackend  = BackendFile
	DefaultLogLevel = "warn"
)

// Config represents user configuration from config.yaml.
// This file is user-managed and never written by binder.
type Config struct {
	// Backend selects the storage backend ("file" or "sqlite").
	Backend string `yaml:"backend"`

	// DefaultFolder is the folder `binder add` targets when -f is not given.
	DefaultFolder string `yaml:"default_folder"`

	// LogLevel sets console log verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend:  DefaultBackend,
		LogLevel: DefaultLogLevel,
	}
}

// LoadConfig loads config.yaml from dir if it exists, otherwise returns
// defaults. Partial config files are merged with defaults.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			// No config file - return defaults
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	// Start with defaults, then merge whatever the file sets
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	return cfg, nil
}

// ConfigPath returns the path to the user config file within dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, configFile)
}
