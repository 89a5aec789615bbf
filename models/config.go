// Package models defines data structures shared across the crawler.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config maps locale identifiers to the URL lists they select.
type Config struct {
	Locales map[string][]string `yaml:"locales"`
}

// LoadConfig reads and parses the YAML locale configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// URLsForLocale returns the URL list registered under the locale key.
// A missing or empty list is an error; the caller treats it as fatal.
func (c *Config) URLsForLocale(locale string) ([]string, error) {
	urls, ok := c.Locales[locale]
	if !ok {
		return nil, fmt.Errorf("no URL list configured for locale %q", locale)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("locale %q has an empty URL list", locale)
	}
	for i, u := range urls {
		if u == "" {
			return nil, fmt.Errorf("locale %q has an empty URL at index %d", locale, i)
		}
	}
	return urls, nil
}
