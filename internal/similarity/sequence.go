// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"fmt"
	"strings"
)

const (
	// minPeptideLength is the shortest peptide the scoring service accepts,
	// in amino acids.
	minPeptideLength = 3

	// minCodonLength is the shortest codon sequence the scoring service
	// accepts, in nucleotides.
	minCodonLength = 15
)

// CleanPeptide normalizes a tag peptide sequence the way the scoring
// service does: stop markers ("*"), unknown residues ("?"), and whitespace
// are stripped and the result is uppercased.
func CleanPeptide(sequence string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '?', '*', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, sequence)
	return strings.ToUpper(strings.TrimSpace(cleaned))
}

// CleanCodon normalizes a codon sequence: hyphen delimiters and whitespace
// are stripped and the result is lowercased, yielding a plain nucleotide
// string.
func CleanCodon(sequence string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '-', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, sequence)
	return strings.ToLower(strings.TrimSpace(cleaned))
}

// validatePeptide cleans and length-checks a peptide query sequence.
func validatePeptide(sequence string) (string, error) {
	cleaned := CleanPeptide(sequence)
	if len(cleaned) < minPeptideLength {
		return "", fmt.Errorf("sequence too short: need at least %d amino acids, got %d", minPeptideLength, len(cleaned))
	}
	return cleaned, nil
}

// validateCodon cleans and length-checks a codon query sequence.
func validateCodon(sequence string) (string, error) {
	cleaned := CleanCodon(sequence)
	if len(cleaned) < minCodonLength {
		return "", fmt.Errorf("sequence too short: need at least %d nucleotides, got %d", minCodonLength, len(cleaned))
	}
	return cleaned, nil
}
