// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the tmRNA search client.
package types

// Record is one row of the tmRNA dataset. Keyword search returns records
// with the native columns only; similarity search returns records enriched
// with Similarity, EValue, and Algorithm from the scoring service.
type Record struct {
	// Identifier is the unique record ID within the dataset.
	Identifier string `json:"identifier" yaml:"identifier"`

	// OrganismName is the source organism. May be empty.
	OrganismName string `json:"organism_name" yaml:"organism_name"`

	// TagPeptide is the proteolysis tag peptide sequence.
	TagPeptide string `json:"tag_peptide" yaml:"tag_peptide"`

	// Codons is the hyphen-delimited codon token string (e.g. "gca-gct-aat").
	Codons string `json:"codons" yaml:"codons"`

	// TmRNASequence is the full tmRNA nucleotide sequence.
	TmRNASequence string `json:"tmrna_sequence" yaml:"tmrna_sequence"`

	// Accession is the source database accession. May be empty.
	Accession string `json:"accession,omitempty" yaml:"accession,omitempty"`

	// PeptideLength is the tag peptide length in amino acids.
	PeptideLength int `json:"peptide_length,omitempty" yaml:"peptide_length,omitempty"`

	// SequenceLength is the tmRNA sequence length in nucleotides.
	SequenceLength int `json:"sequence_length,omitempty" yaml:"sequence_length,omitempty"`

	// Similarity is the percentage similarity (0-100) reported by the
	// scoring service. Nil for keyword results.
	Similarity *float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`

	// EValue is the expectation value reported by the scoring service
	// ("N/A" from scorers that do not compute one). Empty for keyword results.
	EValue string `json:"e_value,omitempty" yaml:"e_value,omitempty"`

	// Algorithm names the scoring algorithm (e.g. "BLOSUM62"). Empty for
	// keyword results.
	Algorithm string `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
}

// HasSimilarity reports whether the record came from a similarity search.
func (r Record) HasSimilarity() bool {
	return r.Similarity != nil
}

// MatchType identifies which column of a record matched a suggestion query.
type MatchType string

const (
	MatchIdentifier MatchType = "identifier"
	MatchOrganism   MatchType = "organism"
)

// Suggestion is a lightweight typeahead candidate. Suggestions are derived
// per keystroke and never persisted.
type Suggestion struct {
	Identifier string    `json:"identifier"`
	Organism   string    `json:"organism"`
	MatchType  MatchType `json:"match_type"`
}

// Stats holds aggregate counts over the loaded dataset.
type Stats struct {
	TotalRecords    int `json:"total_records"`
	UniqueOrganisms int `json:"unique_organisms"`
}
