// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "github.com/pdiddy/tmrna-search/pkg/types"

// FilterByThreshold returns the records that pass the minimum similarity
// threshold. Records without a similarity value (keyword results) always
// pass. The filter is pure and idempotent: re-applying it with the same
// threshold yields the same set.
func FilterByThreshold(records []types.Record, threshold float64) []types.Record {
	filtered := make([]types.Record, 0, len(records))
	for _, r := range records {
		if r.Similarity == nil || *r.Similarity >= threshold {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
