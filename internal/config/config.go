// Package config loads user defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user defaults. Command-line flags override every field.
type Config struct {
	Color string `yaml:"color"`
	Alarm Alarm  `yaml:"alarm"`
}

// Alarm configures what happens when a countdown finishes.
type Alarm struct {
	Bell     bool          `yaml:"bell"`
	Command  string        `yaml:"command"`
	Sound    string        `yaml:"sound"`
	Repeat   int           `yaml:"repeat"`
	Interval time.Duration `yaml:"interval"`
	Webhook  string        `yaml:"webhook"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Color: "auto",
		Alarm: Alarm{
			Bell:     true,
			Interval: time.Second,
		},
	}
}

// DefaultPath returns the config file location under the user's config
// directory, e.g. ~/.config/countdown/config.yml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "countdown", "config.yml"), nil
}

// Load reads path on top of Default. When path is empty the default
// location is used and a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be one of \"auto\", \"always\", or \"never\", got %q", c.Color)
	}
	if c.Alarm.Repeat < 0 {
		return fmt.Errorf("alarm.repeat cannot be negative")
	}
	if c.Alarm.Interval <= 0 {
		return fmt.Errorf("alarm.interval must be positive, got %s", c.Alarm.Interval)
	}
	return nil
}
