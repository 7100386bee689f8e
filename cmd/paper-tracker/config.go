// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-tracker/internal/secrets"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

func defaultConfig() *types.Config {
	return &types.Config{
		Site: types.SiteConfig{
			Title:       "arXiv Paper Tracker",
			Description: "Daily digest of relevant research papers",
		},
		LLM: types.LLMConfig{
			Provider:   types.ProviderClaude,
			Model:      "claude-sonnet-4-20250514",
			MaxRetries: 3,
		},
		Fetch: types.FetchConfig{
			DaysBack:           1,
			MaxPapersPerDomain: 50,
			MinRelevanceScore:  5,
			Timeout:            30 * time.Second,
			UserAgent:          "paper-tracker/0.1",
			DomainDelay:        3 * time.Second,
		},
		Store: types.StoreConfig{DataDir: "data"},
	}
}

// loadConfig builds the effective configuration: defaults, then the viper
// config file, then environment overrides (PAPER_TRACKER_*), then API keys
// from .secrets/ for whatever is still unset.
func loadConfig() (*types.Config, error) {
	cfg := defaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = types.LLMProvider(v)
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.api_key"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := viper.GetString("llm.host"); v != "" {
		cfg.LLM.Host = v
	}
	if v := viper.GetString("store.data_dir"); v != "" {
		cfg.Store.DataDir = v
	}

	secrets.Apply(&cfg.LLM, loadedSecrets)
	return cfg, nil
}

// requireDomains rejects configurations that track nothing.
func requireDomains(cfg *types.Config) error {
	if len(cfg.Domains) == 0 {
		return fmt.Errorf("no domains configured; add at least one domain to %s", configName())
	}
	return nil
}

func configName() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return "paper-tracker.yaml"
}
