// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes a result set to CSV or FASTA. It is pure
// formatting: no search logic, no filtering.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

// SequenceKind selects which sequence a FASTA body carries.
type SequenceKind string

const (
	SequencePeptide SequenceKind = "peptide"
	SequenceCodon   SequenceKind = "codon"
	SequenceTmRNA   SequenceKind = "tmrna"
)

// fastaLineWidth is the conventional FASTA body wrap width.
const fastaLineWidth = 60

// WriteCSV writes records as CSV with a header row. Fields containing
// commas or quotes are quoted per RFC 4180. Similarity and e-value
// columns are left empty for keyword results.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)

	header := []string{
		"identifier", "organism_name", "tag_peptide", "codons",
		"tmrna_sequence", "accession", "similarity", "e_value",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, r := range records {
		similarity := ""
		if r.Similarity != nil {
			similarity = strconv.FormatFloat(*r.Similarity, 'f', 2, 64)
		}
		row := []string{
			r.Identifier, r.OrganismName, r.TagPeptide, r.Codons,
			r.TmRNASequence, r.Accession, similarity, r.EValue,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFASTA writes records in FASTA format: the identifier as the header
// line and the selected sequence as the body, wrapped at 60 columns.
// Codon bodies have their hyphen delimiters stripped. Records whose
// selected sequence is empty are skipped.
func WriteFASTA(w io.Writer, records []types.Record, kind SequenceKind) error {
	for _, r := range records {
		body, err := sequenceBody(r, kind)
		if err != nil {
			return err
		}
		if body == "" {
			continue
		}

		if _, err := fmt.Fprintf(w, ">%s\n", r.Identifier); err != nil {
			return fmt.Errorf("writing FASTA header: %w", err)
		}
		for len(body) > 0 {
			n := min(len(body), fastaLineWidth)
			if _, err := fmt.Fprintln(w, body[:n]); err != nil {
				return fmt.Errorf("writing FASTA body: %w", err)
			}
			body = body[n:]
		}
	}
	return nil
}

func sequenceBody(r types.Record, kind SequenceKind) (string, error) {
	switch kind {
	case SequencePeptide:
		return r.TagPeptide, nil
	case SequenceCodon:
		return strings.ReplaceAll(r.Codons, "-", ""), nil
	case SequenceTmRNA:
		return r.TmRNASequence, nil
	default:
		return "", fmt.Errorf("unknown sequence kind %q: use peptide, codon, or tmrna", kind)
	}
}
