package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yanet-platform/shmqueue/common/go/logging"
)

// Config holds settings sqctl reads from --config, overlaying
// DefaultConfig the same way coordinator.LoadConfig does in the
// teacher control plane: defaults first, then whatever the file
// overrides.
type Config struct {
	Logging logging.Config `yaml:"logging"`
}

// DefaultConfig returns the configuration sqctl runs with when
// --config is not given.
func DefaultConfig() *Config {
	return &Config{
		Logging: *logging.DefaultConfig(),
	}
}

// LoadConfig loads a YAML configuration file, falling back to
// DefaultConfig for any field the file doesn't set.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	return cfg, nil
}
