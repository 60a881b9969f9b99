// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

func TestFormatTableKeywordResults(t *testing.T) {
	state := State{
		Status: StatusSuccess,
		Results: []types.Record{
			{Identifier: "Magne_vibri_1", OrganismName: "Magnetovibrio blakemorei", TagPeptide: "AANDNFAEEFAVAA"},
		},
		ElapsedSeconds: 0.01,
	}

	var sb strings.Builder
	FormatTable(state, &sb)
	out := sb.String()

	if !strings.Contains(out, "Magne_vibri_1") {
		t.Errorf("output missing identifier: %q", out)
	}
	if strings.Contains(out, "Sim%") {
		t.Errorf("keyword results must not show similarity columns: %q", out)
	}
	if !strings.Contains(out, "1 results in 0.01s") {
		t.Errorf("output missing summary line: %q", out)
	}
}

func TestFormatTableSimilarityResults(t *testing.T) {
	state := State{
		Status:  StatusSuccess,
		Results: []types.Record{similarityRecord("Ecoli_K12_1", 92.5)},
	}

	var sb strings.Builder
	FormatTable(state, &sb)
	out := sb.String()

	if !strings.Contains(out, "Sim%") || !strings.Contains(out, "E-value") {
		t.Errorf("similarity results must show similarity columns: %q", out)
	}
	if !strings.Contains(out, "92.50") {
		t.Errorf("output missing similarity value: %q", out)
	}
}

func TestFormatTableNoResults(t *testing.T) {
	var sb strings.Builder
	FormatTable(State{Status: StatusSuccess}, &sb)

	if !strings.Contains(sb.String(), "No results found.") {
		t.Errorf("output = %q", sb.String())
	}
}

func TestFormatJSON(t *testing.T) {
	state := State{
		Status:         StatusSuccess,
		Modality:       ModePeptide,
		Results:        []types.Record{similarityRecord("Ecoli_K12_1", 92.5)},
		ElapsedSeconds: 3.5,
	}

	var sb strings.Builder
	if err := FormatJSON(state, &sb); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var decoded State
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Status != StatusSuccess || decoded.Modality != ModePeptide {
		t.Errorf("decoded = %+v", decoded)
	}
	if len(decoded.Results) != 1 || decoded.Results[0].Similarity == nil {
		t.Errorf("results did not survive encoding: %+v", decoded.Results)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("Magnetovibrio blakemorei", 10); got != "Magneto..." {
		t.Errorf("truncate = %q, want 10 chars ending in ...", got)
	}
}
