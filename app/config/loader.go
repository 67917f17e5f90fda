package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the feed list configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	slog.Info("Configuration loaded", "path", path, "feeds", len(config.FeedURLs))

	return &config, nil
}

func validate(config *Config) error {
	for i, url := range config.FeedURLs {
		trimmed := strings.TrimSpace(url)
		if trimmed == "" {
			return fmt.Errorf("feed URL at index %d is empty", i)
		}
		if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
			return fmt.Errorf("feed URL at index %d is not an HTTP URL: %s", i, trimmed)
		}
		config.FeedURLs[i] = trimmed
	}

	return nil
}
