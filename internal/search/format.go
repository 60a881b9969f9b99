// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FormatTable writes a result set as a human-readable table to w.
// Similarity and e-value columns are shown only when at least one record
// carries them.
func FormatTable(state State, w io.Writer) {
	if len(state.Results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	withSimilarity := false
	for _, r := range state.Results {
		if r.HasSimilarity() {
			withSimilarity = true
			break
		}
	}

	if withSimilarity {
		fmt.Fprintf(w, "%-4s  %-24s  %-30s  %-20s  %-6s  %s\n",
			"Rank", "Identifier", "Organism", "Tag Peptide", "Sim%", "E-value")
		fmt.Fprintln(w, strings.Repeat("-", 100))
	} else {
		fmt.Fprintf(w, "%-4s  %-24s  %-34s  %s\n",
			"Rank", "Identifier", "Organism", "Tag Peptide")
		fmt.Fprintln(w, strings.Repeat("-", 90))
	}

	for i, r := range state.Results {
		if withSimilarity {
			sim := ""
			if r.Similarity != nil {
				sim = fmt.Sprintf("%.2f", *r.Similarity)
			}
			fmt.Fprintf(w, "%-4d  %-24s  %-30s  %-20s  %-6s  %s\n",
				i+1, truncate(r.Identifier, 24), truncate(r.OrganismName, 30),
				truncate(r.TagPeptide, 20), sim, r.EValue)
		} else {
			fmt.Fprintf(w, "%-4d  %-24s  %-34s  %s\n",
				i+1, truncate(r.Identifier, 24), truncate(r.OrganismName, 34),
				truncate(r.TagPeptide, 28))
		}
	}

	fmt.Fprintf(w, "\n%d results in %.2fs\n", len(state.Results), state.ElapsedSeconds)
}

// FormatJSON writes the search state as indented JSON to w.
func FormatJSON(state State, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
