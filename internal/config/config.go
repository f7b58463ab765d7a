// Package config loads relmap settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "relmap.yaml"

type Config struct {
	// DataFile is the relationship file loaded at startup and saved after
	// every change.
	DataFile string `yaml:"data_file"`
	// AutosaveInterval is the period of the background save.
	AutosaveInterval time.Duration `yaml:"autosave_interval"`
	// Watch reloads the graph when another program edits DataFile.
	Watch bool `yaml:"watch"`

	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`
}

func Default() Config {
	return Config{
		DataFile:         "relationships.json",
		AutosaveInterval: 300 * time.Second,
		LogFile:          "relmap.log",
		LogLevel:         "info",
		Environment:      "production",
	}
}

// Load reads path over the defaults. A missing file is not an error unless
// required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DataFile == "" {
		return errors.New("data_file must not be empty")
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("autosave_interval must be positive, got %s", c.AutosaveInterval)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
