// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search unifies the three search modalities (local keyword,
// remote peptide similarity, remote codon similarity) behind one
// request/result/error/timing contract.
//
// A Session owns exactly one live search state. Issuing a new search
// supersedes the previous one: if an older request resolves after a newer
// one has started, its outcome is discarded rather than applied, so the
// visible state always reflects the most recent request.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/tmrna-search/internal/similarity"
	"github.com/pdiddy/tmrna-search/pkg/types"
)

// Modality identifies which search method produced a result set.
type Modality string

const (
	ModeKeyword Modality = "keyword"
	ModePeptide Modality = "peptide"
	ModeCodon   Modality = "codon"
)

// Status is the lifecycle state of the current search.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusSearching Status = "searching"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// State is a snapshot of the current search. ElapsedSeconds is measured
// locally for keyword searches and reported by the scoring service for
// similarity searches, where server-side computation dominates.
type State struct {
	Status         Status         `json:"status"`
	Modality       Modality       `json:"modality,omitempty"`
	Results        []types.Record `json:"results"`
	Err            string         `json:"error,omitempty"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
}

// KeywordStore is the local search surface of the dataset store.
type KeywordStore interface {
	SearchKeyword(ctx context.Context, query string, limit int) ([]types.Record, error)
}

// SimilaritySearcher is the remote scoring surface.
// *similarity.Client satisfies it.
type SimilaritySearcher interface {
	SearchPeptide(ctx context.Context, sequence string, threshold float64) (similarity.Output, error)
	SearchCodon(ctx context.Context, sequence string, threshold float64) (similarity.Output, error)
}

// Session coordinates searches for one active caller. Methods are safe
// for concurrent use; a later call supersedes an earlier one.
type Session struct {
	store  KeywordStore
	remote SimilaritySearcher

	mu    sync.Mutex
	seq   uint64
	state State
}

// NewSession returns an idle Session over the given backends.
func NewSession(store KeywordStore, remote SimilaritySearcher) *Session {
	return &Session{
		store:  store,
		remote: remote,
		state:  State{Status: StatusIdle},
	}
}

// State returns a snapshot of the current search state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Clear resets the session to idle with no results and no error. Any
// in-flight search is superseded; its outcome will be discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = State{Status: StatusIdle}
}

// SearchKeyword runs a local keyword search. An empty or whitespace-only
// query clears the results without entering the searching state.
func (s *Session) SearchKeyword(ctx context.Context, query string) State {
	if strings.TrimSpace(query) == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.seq++
		s.state = State{Status: StatusIdle, Modality: ModeKeyword}
		return s.state
	}

	token := s.begin(ModeKeyword)

	start := time.Now()
	records, err := s.store.SearchKeyword(ctx, query, 0)
	if err != nil {
		return s.fail(token, err)
	}
	return s.succeed(token, records, time.Since(start).Seconds())
}

// SearchPeptide runs a remote peptide similarity search.
func (s *Session) SearchPeptide(ctx context.Context, sequence string, threshold float64) State {
	token := s.begin(ModePeptide)
	out, err := s.remote.SearchPeptide(ctx, sequence, threshold)
	if err != nil {
		return s.fail(token, err)
	}
	return s.succeed(token, out.Results, out.SearchTime)
}

// SearchCodon runs a remote codon similarity search.
func (s *Session) SearchCodon(ctx context.Context, sequence string, threshold float64) State {
	token := s.begin(ModeCodon)
	out, err := s.remote.SearchCodon(ctx, sequence, threshold)
	if err != nil {
		return s.fail(token, err)
	}
	return s.succeed(token, out.Results, out.SearchTime)
}

// begin marks a new search in flight and returns its supersession token.
// Prior results stay visible while the new search runs.
func (s *Session) begin(mode Modality) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state.Status = StatusSearching
	s.state.Modality = mode
	s.state.Err = ""
	return s.seq
}

// succeed applies a successful outcome unless the search was superseded.
func (s *Session) succeed(token uint64, results []types.Record, elapsed float64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		return s.state
	}
	s.state.Status = StatusSuccess
	s.state.Results = results
	s.state.Err = ""
	s.state.ElapsedSeconds = elapsed
	return s.state
}

// fail applies a failed outcome unless the search was superseded. Stale
// results are cleared so an error is never shown over another search's
// result set.
func (s *Session) fail(token uint64, err error) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq {
		return s.state
	}
	s.state.Status = StatusError
	s.state.Results = nil
	s.state.Err = err.Error()
	s.state.ElapsedSeconds = 0
	return s.state
}
