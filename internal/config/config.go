// Package config loads the YAML configuration shared by the CLI and the MCP
// server.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel = "ALPHA_REGIONS_LOG_LEVEL"
	EnvConfig   = "ALPHA_REGIONS_CONFIG"
)

// Config holds tunables for region detection and output.
type Config struct {
	// MaxSteps caps a single boundary trace. 0 selects the automatic bound.
	MaxSteps int `yaml:"max_steps"`

	// Format is the CLI output format: text, json or yaml.
	Format string `yaml:"format"`

	// LogLevel is info or debug.
	LogLevel string `yaml:"log_level"`

	Overlay OverlayConfig `yaml:"overlay"`

	// BatchWorkers bounds concurrent images in regions_find_batch.
	BatchWorkers int `yaml:"batch_workers"`
}

// OverlayConfig holds overlay rendering defaults.
type OverlayConfig struct {
	Alpha uint8  `yaml:"alpha"`
	Tint  string `yaml:"tint"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxSteps: 0,
		Format:   "text",
		LogLevel: "info",
		Overlay: OverlayConfig{
			Alpha: 205,
		},
		BatchWorkers: 4,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks field ranges and normalises enum values to lower case.
func (c *Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be >= 0, got %d", c.MaxSteps)
	}

	c.Format = strings.ToLower(c.Format)
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "info", "debug":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	if c.Overlay.Alpha == 0 {
		return fmt.Errorf("overlay.alpha must be between 1 and 255")
	}
	if c.BatchWorkers < 1 {
		return fmt.Errorf("batch_workers must be >= 1, got %d", c.BatchWorkers)
	}

	return nil
}

// ApplyEnv overrides the log level from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}
