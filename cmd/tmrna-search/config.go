// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/tmrna-search/internal/secrets"
	"github.com/pdiddy/tmrna-search/pkg/types"
)

const (
	defaultArtifactURL = "https://tmrna-db.org/data/tmrna.db"
	defaultAPIBase     = "https://tmrna-db.org"
	defaultUserAgent   = "tmrna-search/0.1"
)

func init() {
	viper.SetDefault("dataset.artifact_url", defaultArtifactURL)
	viper.SetDefault("dataset.max_results", 500)
	viper.SetDefault("dataset.max_suggestions", 10)
	viper.SetDefault("similarity.base_url", defaultAPIBase)
	viper.SetDefault("similarity.max_retries", 5)
	viper.SetDefault("thresholds.peptide", 50)
	viper.SetDefault("thresholds.codon", 50)
	viper.SetDefault("http.timeout", "120s")
}

// clientConfig assembles component configuration from the config file,
// environment, and secrets.
func clientConfig() types.ClientConfig {
	timeout := viper.GetDuration("http.timeout")
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	httpCfg := types.HTTPConfig{
		Timeout:   timeout,
		UserAgent: defaultUserAgent,
	}

	cacheDir := viper.GetString("dataset.cache_dir")
	if cacheDir == "" {
		if cache, err := os.UserCacheDir(); err == nil {
			cacheDir = filepath.Join(cache, "tmrna-search")
		} else {
			cacheDir = ".tmrna-search"
		}
	}

	return types.ClientConfig{
		Dataset: types.DatasetConfig{
			HTTPConfig:     httpCfg,
			ArtifactURL:    viper.GetString("dataset.artifact_url"),
			CacheDir:       cacheDir,
			MaxResults:     viper.GetInt("dataset.max_results"),
			MaxSuggestions: viper.GetInt("dataset.max_suggestions"),
		},
		Similarity: types.SimilarityConfig{
			HTTPConfig: httpCfg,
			BaseURL:    viper.GetString("similarity.base_url"),
			APIToken:   secretDefault(secrets.SimilarityAPIToken, viper.GetString("similarity.api_token")),
			MaxRetries: viper.GetInt("similarity.max_retries"),
		},
		Thresholds: types.ThresholdConfig{
			Peptide: viper.GetFloat64("thresholds.peptide"),
			Codon:   viper.GetFloat64("thresholds.codon"),
		},
	}
}
