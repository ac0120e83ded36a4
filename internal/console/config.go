package console

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the console's settings.
type Config struct {
	Panel   PanelConfig   `yaml:"panel"`
	Server  string        `yaml:"server"`
	Console ConsoleConfig `yaml:"console"`
}

type PanelConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type ConsoleConfig struct {
	HistoryLines int `yaml:"history_lines"`
}

func defaultConfig() *Config {
	return &Config{
		Console: ConsoleConfig{
			HistoryLines: 1000,
		},
	}
}

// Load reads the config file at path, applying defaults for unset fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, but a missing file yields the defaults instead of
// an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}

// Validate checks that the fields required to reach a panel are set.
func (c *Config) Validate() error {
	if c.Panel.URL == "" {
		return errors.New("panel.url is required")
	}
	if c.Panel.APIKey == "" {
		return errors.New("panel.api_key is required")
	}
	if c.Server == "" {
		return errors.New("server is required")
	}
	return nil
}
