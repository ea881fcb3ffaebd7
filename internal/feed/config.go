// Package feed implements the research radar: feed configuration, RSS
// fetching with an explicit timeout, and TTL caching of results.
package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxItems       = 10
	defaultTimeoutSeconds = 8
)

// Source types in feeds.yaml.
const (
	TypeLink = "link"
	TypeRSS  = "rss"
)

// Source is one entry in a radar section: either a plain link or an RSS feed.
type Source struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
	Type  string `yaml:"type"`
}

// Section groups related sources under a heading.
type Section struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Items       []Source `yaml:"items"`
}

// FetchConfig bounds feed retrieval.
type FetchConfig struct {
	MaxItemsPerFeed int `yaml:"max_items_per_feed"`
	TimeoutSeconds  int `yaml:"timeout_seconds"`
}

// Config is the feeds.yaml document. It is read-only at runtime.
type Config struct {
	Sections []Section   `yaml:"sections"`
	Fetch    FetchConfig `yaml:"fetch"`
}

// DefaultConfig returns the config used when feeds.yaml is absent.
func DefaultConfig() Config {
	return Config{
		Fetch: FetchConfig{
			MaxItemsPerFeed: defaultMaxItems,
			TimeoutSeconds:  defaultTimeoutSeconds,
		},
	}
}

// LoadConfig reads feeds.yaml at path. A missing file yields the default
// (empty) config; zero fetch bounds fall back to their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("feed: reading %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("feed: parsing %s: %w", path, err)
	}

	if cfg.Fetch.MaxItemsPerFeed <= 0 {
		cfg.Fetch.MaxItemsPerFeed = defaultMaxItems
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		cfg.Fetch.TimeoutSeconds = defaultTimeoutSeconds
	}
	return cfg, nil
}
