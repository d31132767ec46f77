// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "profile-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the web source clients.
// Per prd002-sources R1.2, R4.1-R4.3.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoints maps source name to base URL. The four built-in names
	// (pubmed, researchgate, google_scholar, clinical_trials) select
	// source-specific extraction; other names are fetched but produce
	// no extraction.
	Endpoints map[string]string `json:"endpoints" yaml:"endpoints"`

	// MaxRetries is the number of additional attempts after a failed
	// fetch (default 2, so at most 3 attempts per source). The delay
	// between attempts is fixed at one second.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// MaxWorkers bounds the concurrent fetches per search (default 4).
	MaxWorkers int `json:"max_workers" yaml:"max_workers"`
}

// DefaultEndpoints returns the built-in source endpoints.
func DefaultEndpoints() map[string]string {
	return map[string]string{
		"pubmed":          "https://pubmed.ncbi.nlm.nih.gov",
		"researchgate":    "https://www.researchgate.net",
		"google_scholar":  "https://scholar.google.com",
		"clinical_trials": "https://clinicaltrials.gov",
	}
}

// AIConfig holds settings for the generative backend.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API. When empty the
	// generative fallback, enrichment, and question answering are
	// disabled and searches return source data only.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// DatasetConfig holds settings for the CSV researcher dataset.
type DatasetConfig struct {
	// Path is the CSV file to load at startup. Empty skips the dataset
	// step entirely.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// StoreConfig holds settings for the profile store.
// Per prd006-store R1.1.
type StoreConfig struct {
	// Dir is the directory holding the profile database (profiles.db).
	Dir string `json:"dir" yaml:"dir"`
}

// EngineConfig groups all component configurations.
type EngineConfig struct {
	Sources SourceConfig  `json:"sources" yaml:"sources"`
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Dataset DatasetConfig `json:"dataset" yaml:"dataset"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
