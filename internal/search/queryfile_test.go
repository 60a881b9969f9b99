// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")

	params := QueryParams{
		Modality:  ModePeptide,
		Sequence:  "AANDENYALAA",
		Threshold: 85,
	}
	state := State{
		Status:         StatusSuccess,
		Results:        []types.Record{similarityRecord("Ecoli_K12_1", 92.5)},
		ElapsedSeconds: 3.5,
	}

	if err := WriteQueryFile(path, params, state); err != nil {
		t.Fatalf("WriteQueryFile: %v", err)
	}

	qf, err := ReadQueryFile(path)
	if err != nil {
		t.Fatalf("ReadQueryFile: %v", err)
	}

	if qf.Query.Modality != ModePeptide || qf.Query.Sequence != "AANDENYALAA" || qf.Query.Threshold != 85 {
		t.Errorf("query params did not round-trip: %+v", qf.Query)
	}
	if len(qf.Results) != 1 || qf.Results[0].Identifier != "Ecoli_K12_1" {
		t.Fatalf("results did not round-trip: %+v", qf.Results)
	}
	if qf.Results[0].Similarity == nil || *qf.Results[0].Similarity != 92.5 {
		t.Error("similarity value did not round-trip")
	}
	if qf.Summary.Total != 1 || qf.Summary.ElapsedSeconds != 3.5 {
		t.Errorf("summary = %+v", qf.Summary)
	}
	if qf.Summary.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestReadQueryFileMissing(t *testing.T) {
	if _, err := ReadQueryFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
