package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/codedash/internal/cache"
	"github.com/ziadkadry99/codedash/internal/resource"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (CODEDASH_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: CODEDASH_API_BASE_URL -> api.base_url, etc.
	if err := k.Load(env.Provider("CODEDASH_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "CODEDASH_"))
		if s == "data_dir" {
			return s
		}
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", c.API.BaseURL, err)
	}

	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must be non-negative")
	}
	if c.API.Limit < 0 {
		return fmt.Errorf("api.limit must be non-negative")
	}

	if c.Gateway.Port <= 0 || c.Gateway.Port > 65535 {
		return fmt.Errorf("gateway.port must be between 1 and 65535")
	}

	for kind, secs := range c.freshnessSeconds() {
		if secs < 0 {
			return fmt.Errorf("freshness.%s must be non-negative", kind)
		}
	}

	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("search.debounce_ms must be non-negative")
	}
	if c.Search.MinQueryLen < 0 {
		return fmt.Errorf("search.min_query_len must be non-negative")
	}
	if c.Search.RecentLimit < 0 {
		return fmt.Errorf("search.recent_limit must be non-negative")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	return nil
}

func (c *Config) freshnessSeconds() map[resource.Kind]int {
	return map[resource.Kind]int{
		resource.KindFiles:     c.Freshness.Files,
		resource.KindClasses:   c.Freshness.Classes,
		resource.KindFunctions: c.Freshness.Functions,
		resource.KindServices:  c.Freshness.Services,
	}
}

// FreshnessWindows converts the configured per-kind seconds into the
// duration map the cache expects. Zero entries keep the cache defaults.
func (c *Config) FreshnessWindows() map[resource.Kind]time.Duration {
	windows := make(map[resource.Kind]time.Duration, len(cache.DefaultWindows))
	for kind, secs := range c.freshnessSeconds() {
		if secs > 0 {
			windows[kind] = time.Duration(secs) * time.Second
		}
	}
	return windows
}

// APITimeout returns the configured backend request timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// DebounceWindow returns the configured search quiet period.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}
