// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A search can be saved to a file and reloaded later (for filtering or
// export) without re-querying the store or the scoring service.
type QueryFile struct {
	Query   QueryParams    `yaml:"query"`
	Results []types.Record `yaml:"results"`
	Summary QuerySummary   `yaml:"summary"`
}

// QueryParams stores the search parameters in a serializable form.
type QueryParams struct {
	Modality  Modality `yaml:"modality"`
	Text      string   `yaml:"text,omitempty"`
	Sequence  string   `yaml:"sequence,omitempty"`
	Threshold float64  `yaml:"threshold,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total          int       `yaml:"total"`
	ElapsedSeconds float64   `yaml:"elapsed_seconds"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves search parameters and results to a YAML file.
func WriteQueryFile(path string, params QueryParams, state State) error {
	qf := QueryFile{
		Query:   params,
		Results: state.Results,
		Summary: QuerySummary{
			Total:          len(state.Results),
			ElapsedSeconds: state.ElapsedSeconds,
			Timestamp:      time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
