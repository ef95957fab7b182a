// Package config holds the configuration for talking to the task service.
//
// The original helpers used hardcoded module-level addresses; here everything
// is an explicit Config passed to the client constructors, optionally
// overridden from a taskmeter.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseAddr is the task service API address
	DefaultBaseAddr = "http://localhost:24817"
	// DefaultContentAddr is the content server address
	DefaultContentAddr = "http://localhost:24816"
	// DefaultStatusPath is where status data is loaded from and dumped to
	DefaultStatusPath = "./status-data.json"
	// DefaultPollStep is the pause between task status polls, in seconds
	DefaultPollStep = 3
	// DefaultPollTimeout is the whole-batch polling budget, in seconds
	DefaultPollTimeout = 7200
)

// Config represents the taskmeter configuration
type Config struct {
	BaseAddr    string `yaml:"baseAddr,omitempty"`
	ContentAddr string `yaml:"contentAddr,omitempty"`
	StatusPath  string `yaml:"statusPath,omitempty"`
	PollStep    int    `yaml:"pollStep,omitempty"`    // seconds
	PollTimeout int    `yaml:"pollTimeout,omitempty"` // seconds
	Debug       bool   `yaml:"debug,omitempty"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		BaseAddr:    DefaultBaseAddr,
		ContentAddr: DefaultContentAddr,
		StatusPath:  DefaultStatusPath,
		PollStep:    DefaultPollStep,
		PollTimeout: DefaultPollTimeout,
	}
}

// Step returns the poll step as a duration
func (c *Config) Step() time.Duration {
	return time.Duration(c.PollStep) * time.Second
}

// Timeout returns the whole-batch polling budget as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.PollTimeout) * time.Second
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".taskmeter.yaml",
	"taskmeter.yaml",
}

// Load reads a config file and merges it over the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover looks for a config file in dir and loads it if present.
// No config file means defaults, not an error.
func Discover(dir string) (*Config, error) {
	for _, name := range ConfigFilenames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return DefaultConfig(), nil
}
