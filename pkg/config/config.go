// Package config loads and saves the CLI's yaml configuration: API
// credentials plus the items the sync pipeline tracks.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for the config file.
const DefaultPath = "./config.yaml"

// ItemRef names a connected item tracked by sync.
type ItemRef struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// Storage selects the snapshot store backend.
type Storage struct {
	Backend string `yaml:"backend"` // "json" or "sqlite"
	Path    string `yaml:"path"`
}

type Config struct {
	ClientID       string    `yaml:"clientID"`
	ClientSecret   string    `yaml:"clientSecret"`
	BaseURL        string    `yaml:"baseURL"`
	PollIntervalMS int       `yaml:"pollIntervalMS"`
	Storage        Storage   `yaml:"storage"`
	Items          []ItemRef `yaml:"items"`
}

// Item returns the tracked item with the given name.
func (c *Config) Item(name string) (ItemRef, bool) {
	for _, item := range c.Items {
		if item.Name == name {
			return item, true
		}
	}

	return ItemRef{}, false
}

// SetItem adds or replaces a tracked item by name.
func (c *Config) SetItem(item ItemRef) error {
	if item.Name == "" {
		return fmt.Errorf("item name can not be empty")
	}

	for i := range c.Items {
		if c.Items[i].Name == item.Name {
			c.Items[i] = item
			return nil
		}
	}

	c.Items = append(c.Items, item)
	return nil
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &config, nil
}

func Dump(configPath string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
