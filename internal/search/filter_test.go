// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

func TestFilterByThreshold(t *testing.T) {
	records := []types.Record{
		similarityRecord("above", 90),
		similarityRecord("below", 80),
		similarityRecord("exact", 85),
		{Identifier: "keyword"}, // no similarity: always passes
	}

	filtered := FilterByThreshold(records, 85)

	want := []string{"above", "exact", "keyword"}
	if len(filtered) != len(want) {
		t.Fatalf("len = %d, want %d", len(filtered), len(want))
	}
	for i, id := range want {
		if filtered[i].Identifier != id {
			t.Errorf("filtered[%d] = %s, want %s", i, filtered[i].Identifier, id)
		}
	}
}

func TestFilterByThresholdIdempotent(t *testing.T) {
	records := []types.Record{
		similarityRecord("a", 90),
		similarityRecord("b", 60),
		{Identifier: "c"},
	}

	once := FilterByThreshold(records, 75)
	twice := FilterByThreshold(once, 75)

	if len(once) != len(twice) {
		t.Fatalf("re-filtering changed the set: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Identifier != twice[i].Identifier {
			t.Errorf("record %d changed: %s vs %s", i, once[i].Identifier, twice[i].Identifier)
		}
	}
}

func TestFilterByThresholdKeywordResultsPass(t *testing.T) {
	records := []types.Record{
		{Identifier: "a"},
		{Identifier: "b"},
	}

	filtered := FilterByThreshold(records, 100)
	if len(filtered) != 2 {
		t.Errorf("len = %d, want 2: keyword results must always pass", len(filtered))
	}
}

func TestFilterByThresholdEmpty(t *testing.T) {
	if got := FilterByThreshold(nil, 50); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
