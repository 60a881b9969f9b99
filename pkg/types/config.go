// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "tmrna-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DatasetConfig holds settings for the embedded dataset store.
type DatasetConfig struct {
	HTTPConfig `yaml:",inline"`

	// ArtifactURL is the well-known location of the prepackaged SQLite
	// dataset artifact.
	ArtifactURL string `json:"artifact_url" yaml:"artifact_url"`

	// CacheDir is the directory the fetched artifact is materialized into.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// MaxResults caps keyword search results (default 500).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxSuggestions caps typeahead suggestion results (default 10).
	MaxSuggestions int `json:"max_suggestions" yaml:"max_suggestions"`
}

// SimilarityConfig holds settings for the remote similarity service.
type SimilarityConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the root of the similarity service API
	// (e.g. "https://tmrna-api.example.org").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIToken is an optional bearer token for the service.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// MaxRetries is the retry budget for rate-limited requests (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ThresholdConfig holds the per-modality minimum similarity percentages.
// Valid values are 50-100 inclusive.
type ThresholdConfig struct {
	Peptide float64 `json:"peptide" yaml:"peptide"`
	Codon   float64 `json:"codon" yaml:"codon"`
}

// ClientConfig groups all component configurations.
type ClientConfig struct {
	Dataset    DatasetConfig    `json:"dataset" yaml:"dataset"`
	Similarity SimilarityConfig `json:"similarity" yaml:"similarity"`
	Thresholds ThresholdConfig  `json:"thresholds" yaml:"thresholds"`
}
