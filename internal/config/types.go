package config

// APIConfig describes the remote read-only analysis backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" koanf:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	Limit          int    `yaml:"limit" koanf:"limit"`
}

// GatewayConfig holds the local gateway's HTTP settings.
type GatewayConfig struct {
	Port         int  `yaml:"port" koanf:"port"`
	AllowAllCORS bool `yaml:"allow_all_cors" koanf:"allow_all_cors"`
}

// FreshnessConfig sets the per-kind cache freshness windows, in seconds.
// Zero keeps the built-in default for that kind.
type FreshnessConfig struct {
	Files     int `yaml:"files" koanf:"files"`
	Classes   int `yaml:"classes" koanf:"classes"`
	Functions int `yaml:"functions" koanf:"functions"`
	Services  int `yaml:"services" koanf:"services"`
}

// SearchConfig tunes the search coordinator.
type SearchConfig struct {
	DebounceMS  int `yaml:"debounce_ms" koanf:"debounce_ms"`
	MinQueryLen int `yaml:"min_query_len" koanf:"min_query_len"`
	RecentLimit int `yaml:"recent_limit" koanf:"recent_limit"`
}

// Config is the top-level codedash configuration, corresponding to .codedash.yml.
type Config struct {
	API       APIConfig       `yaml:"api" koanf:"api"`
	Gateway   GatewayConfig   `yaml:"gateway" koanf:"gateway"`
	Freshness FreshnessConfig `yaml:"freshness" koanf:"freshness"`
	Search    SearchConfig    `yaml:"search" koanf:"search"`
	DataDir   string          `yaml:"data_dir" koanf:"data_dir"`
}
