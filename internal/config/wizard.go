package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .codedash.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to codedash! Let's configure your dashboard gateway.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend API base URL.
	urlPrompt := promptui.Prompt{
		Label:   "Analysis API base URL",
		Default: cfg.API.BaseURL,
		Validate: func(s string) error {
			if _, err := url.ParseRequestURI(s); err != nil {
				return fmt.Errorf("not a valid URL")
			}
			return nil
		},
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base URL prompt: %w", err)
	}
	cfg.API.BaseURL = baseURL

	// 2. Gateway port.
	portPrompt := promptui.Prompt{
		Label:   "Gateway port",
		Default: strconv.Itoa(cfg.Gateway.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("must be a port number")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Gateway.Port, _ = strconv.Atoi(portStr)

	// 3. Cache tuning preset.
	cachePrompt := promptui.Select{
		Label: "Cache freshness preset",
		Items: []string{"default (10s files/classes, 30s functions/services)", "aggressive (5s everywhere)", "relaxed (60s everywhere)"},
	}
	idx, _, err := cachePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cache preset selection: %w", err)
	}
	switch idx {
	case 1:
		cfg.Freshness = FreshnessConfig{Files: 5, Classes: 5, Functions: 5, Services: 5}
	case 2:
		cfg.Freshness = FreshnessConfig{Files: 60, Classes: 60, Functions: 60, Services: 60}
	}

	// 4. Data directory.
	dirPrompt := promptui.Prompt{
		Label:   "Data directory (recent searches, UI state)",
		Default: cfg.DataDir,
	}
	dataDir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data directory prompt: %w", err)
	}
	cfg.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	if err := cfg.Save(".codedash.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration saved to .codedash.yml")
	return cfg, nil
}
