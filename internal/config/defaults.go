package config

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8420/api",
			TimeoutSeconds: 15,
			Limit:          500,
		},
		Gateway: GatewayConfig{
			Port:         8421,
			AllowAllCORS: false,
		},
		Freshness: FreshnessConfig{
			Files:     10,
			Classes:   10,
			Functions: 30,
			Services:  30,
		},
		Search: SearchConfig{
			DebounceMS:  300,
			MinQueryLen: 2,
			RecentLimit: 20,
		},
		DataDir: ".codedash",
	}
}
