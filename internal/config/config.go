// Package config defines the winposture configuration file schema,
// matching winposture.yaml as written by the setup wizard.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full collector configuration. Every field has a working
// default, so an empty or missing file is a valid configuration.
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Collection CollectionConfig `yaml:"collection"`
	History    HistoryConfig    `yaml:"history"`
}

// OutputConfig controls where artifacts land.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// CollectionConfig controls the evidence queries.
type CollectionConfig struct {
	PowerShell        string `yaml:"powershell"`
	TimeoutSec        int    `yaml:"timeout_sec"`
	UpdatesTimeoutSec int    `yaml:"updates_timeout_sec"`
	UpdatesLimit      int    `yaml:"updates_limit"`
	UsersLimit        int    `yaml:"users_limit"`
}

// HistoryConfig controls the optional local run archive. An empty path
// disables recording.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// NewDefaultConfig returns a Config populated with the collection defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Dir: "out"},
		Collection: CollectionConfig{
			PowerShell:        "powershell",
			TimeoutSec:        25,
			UpdatesTimeoutSec: 40,
			UpdatesLimit:      10,
			UsersLimit:        20,
		},
	}
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults apply. Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the collector cannot run
// with. Zero numeric values are allowed and mean "use the default".
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if c.Collection.TimeoutSec < 0 {
		return fmt.Errorf("collection.timeout_sec must not be negative")
	}
	if c.Collection.UpdatesTimeoutSec < 0 {
		return fmt.Errorf("collection.updates_timeout_sec must not be negative")
	}
	if c.Collection.UpdatesLimit < 0 {
		return fmt.Errorf("collection.updates_limit must not be negative")
	}
	if c.Collection.UsersLimit < 0 {
		return fmt.Errorf("collection.users_limit must not be negative")
	}
	return nil
}

// Timeout returns the per-query timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Collection.TimeoutSec) * time.Second
}

// UpdatesTimeout returns the update-history query timeout as a duration.
func (c *Config) UpdatesTimeout() time.Duration {
	return time.Duration(c.Collection.UpdatesTimeoutSec) * time.Second
}
