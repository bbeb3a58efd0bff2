// Package config loads the optional quadtap YAML configuration file.
// Everything in the file can also be given on the command line; flags win
// over file values for device selection, and flag bindings are matched before
// file bindings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the file-based configuration.
type Config struct {
	Bindings []Binding `yaml:"bindings"`
	Devices  []string  `yaml:"devices"`
	Seat     string    `yaml:"seat"`
	Grab     bool      `yaml:"grab"`
}

// Binding is one gesture-to-command entry in the file.
type Binding struct {
	Gesture string `yaml:"gesture"`
	Command string `yaml:"command"`
}

// DefaultPath returns the default config file path, honoring the
// QUADTAP_CONFIG environment variable.
func DefaultPath() string {
	if p := os.Getenv("QUADTAP_CONFIG"); p != "" {
		return p
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quadtap", "config.yaml")
}

// Load reads and parses the config file at path. A missing file is an error;
// use LoadDefault when the file is optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the config file from DefaultPath. A missing file yields
// an empty config: flags alone are a valid configuration.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultPath())
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}
