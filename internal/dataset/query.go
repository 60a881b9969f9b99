// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

const (
	// minSuggestionLength is the minimum trimmed query length for
	// identifier suggestions. Shorter inputs fire on nearly every row and
	// arrive on every keystroke, so they are rejected before the store is
	// touched.
	minSuggestionLength = 3

	// minAutocompleteLength is the minimum trimmed prefix length for
	// organism autocomplete. Prefix matching is narrower than substring
	// matching, so it tolerates shorter inputs.
	minAutocompleteLength = 2
)

// recordColumns is the select list for full record rows, in store order.
const recordColumns = `identifier, organism_name, tag_peptide, codons, tmrna_sequence,
	accession, peptide_length, sequence_length`

// SearchKeyword returns all records where identifier or organism_name
// contains query as a case-insensitive substring, in underlying store
// order, capped at limit (store default when limit <= 0). An empty or
// whitespace-only query returns an empty result set without querying the
// store. Returns ErrNotReady before Initialize succeeds.
func (s *Store) SearchKeyword(ctx context.Context, query string, limit int) ([]types.Record, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.cfg.MaxResults
	}
	if limit <= 0 {
		limit = defaultMaxResults
	}

	needle := strings.ToLower(q)
	rows, err := db.QueryContext(ctx,
		`SELECT `+recordColumns+`
		FROM `+tableName+`
		WHERE instr(lower(identifier), ?) > 0 OR instr(lower(organism_name), ?) > 0
		ORDER BY id
		LIMIT ?`,
		needle, needle, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("keyword query: %w", err)
	}
	defer rows.Close()

	var results []types.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// scanRecord reads one full record row. Nullable columns come back as
// NULL in artifacts built before the accession/length columns were added.
func scanRecord(rows *sql.Rows) (types.Record, error) {
	var (
		r         types.Record
		organism  sql.NullString
		accession sql.NullString
		pepLen    sql.NullInt64
		seqLen    sql.NullInt64
	)
	err := rows.Scan(
		&r.Identifier, &organism, &r.TagPeptide, &r.Codons, &r.TmRNASequence,
		&accession, &pepLen, &seqLen,
	)
	if err != nil {
		return types.Record{}, err
	}
	r.OrganismName = organism.String
	r.Accession = accession.String
	r.PeptideLength = int(pepLen.Int64)
	r.SequenceLength = int(seqLen.Int64)
	return r, nil
}

// IdentifierSuggestions returns up to limit typeahead suggestions whose
// identifier or organism name contains the query as a case-insensitive
// substring. Queries shorter than three trimmed characters return an empty
// list without touching the store. Suggestions are best-effort: any
// internal failure (including an uninitialized store) degrades to an empty
// list rather than an error, so input handling never breaks.
func (s *Store) IdentifierSuggestions(ctx context.Context, query string, limit int) []types.Suggestion {
	q := strings.TrimSpace(query)
	if len(q) < minSuggestionLength {
		return nil
	}

	db, err := s.handle()
	if err != nil {
		return nil
	}

	if limit <= 0 {
		limit = s.cfg.MaxSuggestions
	}
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}

	needle := strings.ToLower(q)
	rows, err := db.QueryContext(ctx,
		`SELECT identifier, organism_name
		FROM `+tableName+`
		WHERE instr(lower(identifier), ?) > 0 OR instr(lower(organism_name), ?) > 0
		ORDER BY id
		LIMIT ?`,
		needle, needle, limit,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var suggestions []types.Suggestion
	for rows.Next() {
		var identifier string
		var organism sql.NullString
		if err := rows.Scan(&identifier, &organism); err != nil {
			return nil
		}

		matchType := types.MatchOrganism
		if strings.Contains(strings.ToLower(identifier), needle) {
			matchType = types.MatchIdentifier
		}
		suggestions = append(suggestions, types.Suggestion{
			Identifier: identifier,
			Organism:   organism.String,
			MatchType:  matchType,
		})
	}
	if rows.Err() != nil {
		return nil
	}
	return suggestions
}

// OrganismAutocomplete returns up to limit distinct non-empty organism
// names starting with prefix (case-insensitive prefix match, not
// substring). Prefixes shorter than two trimmed characters return an empty
// list. Like IdentifierSuggestions, failures degrade to an empty list.
func (s *Store) OrganismAutocomplete(ctx context.Context, prefix string, limit int) []string {
	p := strings.TrimSpace(prefix)
	if len(p) < minAutocompleteLength {
		return nil
	}

	db, err := s.handle()
	if err != nil {
		return nil
	}

	if limit <= 0 {
		limit = s.cfg.MaxSuggestions
	}
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}

	rows, err := db.QueryContext(ctx,
		`SELECT DISTINCT organism_name
		FROM `+tableName+`
		WHERE organism_name != '' AND instr(lower(organism_name), ?) = 1
		ORDER BY organism_name
		LIMIT ?`,
		strings.ToLower(p), limit,
	)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil
		}
		names = append(names, name)
	}
	if rows.Err() != nil {
		return nil
	}
	return names
}

// Stats returns aggregate counts over the dataset. It never fails:
// any query error yields zero-valued stats.
func (s *Store) Stats(ctx context.Context) types.Stats {
	db, err := s.handle()
	if err != nil {
		return types.Stats{}
	}

	var stats types.Stats
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+tableName,
	).Scan(&stats.TotalRecords)
	if err != nil {
		return types.Stats{}
	}

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT organism_name) FROM `+tableName+` WHERE organism_name != ''`,
	).Scan(&stats.UniqueOrganisms)
	if err != nil {
		return types.Stats{}
	}

	return stats
}
