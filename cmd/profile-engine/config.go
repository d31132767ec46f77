// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/profile-engine/internal/engine"
	"github.com/pdiddy/profile-engine/internal/genai"
	"github.com/pdiddy/profile-engine/pkg/types"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "profile-engine/0.1"
	defaultModel     = "claude-sonnet-4-5-20250929"
	defaultStoreDir  = "profiles"
)

// engineConfig assembles the engine configuration from viper with
// built-in defaults.
func engineConfig() types.EngineConfig {
	cfg := types.EngineConfig{
		Sources: types.SourceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			Endpoints:  types.DefaultEndpoints(),
			MaxRetries: 2,
			MaxWorkers: 4,
		},
		AI: types.AIConfig{
			Model: defaultModel,
		},
		Store: types.StoreConfig{Dir: defaultStoreDir},
	}

	if v := viper.GetDuration("sources.timeout"); v > 0 {
		cfg.Sources.Timeout = v
	}
	if v := viper.GetString("sources.user_agent"); v != "" {
		cfg.Sources.UserAgent = v
	}
	if v := viper.GetStringMapString("sources.endpoints"); len(v) > 0 {
		cfg.Sources.Endpoints = v
	}
	if viper.IsSet("sources.max_retries") {
		cfg.Sources.MaxRetries = viper.GetInt("sources.max_retries")
	}
	if v := viper.GetInt("sources.max_workers"); v > 0 {
		cfg.Sources.MaxWorkers = v
	}
	if v := viper.GetString("ai.model"); v != "" {
		cfg.AI.Model = v
	}
	cfg.AI.APIKey = secretDefault("anthropic-api-key", viper.GetString("ai.api_key"))
	cfg.Dataset.Path = viper.GetString("dataset.path")
	if v := viper.GetString("store.dir"); v != "" {
		cfg.Store.Dir = v
	}

	return cfg
}

// newEngine builds the aggregation engine, loading the configured
// dataset when one is set. The generative backend is nil when no API
// key is available.
func newEngine(cfg types.EngineConfig) (*engine.Engine, error) {
	var backend genai.Backend
	if cfg.AI.APIKey != "" {
		backend = &genai.ClaudeBackend{
			APIKey: cfg.AI.APIKey,
			Model:  cfg.AI.Model,
			Client: &http.Client{Timeout: 60 * time.Second},
		}
	}

	e := engine.New(cfg.Sources, backend, os.Stderr)

	if cfg.Dataset.Path != "" {
		if _, err := e.LoadDataset(cfg.Dataset.Path); err != nil {
			return nil, err
		}
	}
	return e, nil
}
