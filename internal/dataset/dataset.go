// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset owns the prepackaged tmRNA dataset artifact and answers
// keyword, suggestion, and autocomplete queries against it once loaded.
//
// The artifact is a SQLite database fetched once over HTTP and opened
// read-only for the rest of the process. Initialization is the only
// expensive operation; it is shared across concurrent callers so the
// artifact is never fetched twice.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/tmrna-search/internal/httputil"
	"github.com/pdiddy/tmrna-search/pkg/types"
)

const (
	artifactFile = "tmrna.db"
	tableName    = "tmrna_data"

	defaultMaxResults     = 500
	defaultMaxSuggestions = 10
	defaultTimeout        = 60 * time.Second
)

// ErrNotReady is returned by query methods invoked before Initialize has
// completed successfully.
var ErrNotReady = errors.New("dataset store not initialized")

// LoadError reports a failed dataset load. The store remains reusable: a
// later Initialize call restarts the whole load from scratch.
type LoadError struct {
	Stage string // "fetch", "materialize", or "verify"
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading dataset (%s): %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store manages the embedded tmRNA dataset database.
//
// The zero value is not usable; construct with NewStore. A Store starts
// uninitialized, transitions to ready on the first successful Initialize,
// and stays ready until Close.
type Store struct {
	cfg    types.DatasetConfig
	client *http.Client

	// group collapses concurrent Initialize calls into a single load.
	group singleflight.Group

	mu    sync.Mutex
	db    *sql.DB
	ready bool
}

// NewStore returns an uninitialized Store. No network or disk activity
// happens until Initialize.
func NewStore(cfg types.DatasetConfig) *Store {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Store{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Ready reports whether the store has been initialized.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Initialize fetches the dataset artifact, materializes it into the cache
// directory, opens it, and verifies the expected table is present and
// non-empty. It is idempotent and concurrency-safe: concurrent callers
// during the first load all await the single in-flight attempt and receive
// the same outcome; once ready, later calls return immediately without
// re-fetching. After a failure the next call restarts the load.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	_, err, _ := s.group.Do("load", func() (any, error) {
		// A caller that raced past the fast path while the previous
		// flight was finishing must not reload.
		s.mu.Lock()
		if s.ready {
			s.mu.Unlock()
			return nil, nil
		}
		s.mu.Unlock()

		db, err := s.load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.db = db
		s.ready = true
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// load performs the fetch, materialize, and verify steps.
func (s *Store) load(ctx context.Context) (*sql.DB, error) {
	path, err := s.fetchArtifact(ctx)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &LoadError{Stage: "materialize", Err: err}
	}

	// Smoke test: the expected table must exist and hold rows.
	var count int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+tableName).Scan(&count)
	if err != nil {
		db.Close()
		return nil, &LoadError{Stage: "verify", Err: err}
	}
	if count == 0 {
		db.Close()
		return nil, &LoadError{Stage: "verify", Err: fmt.Errorf("table %s is empty", tableName)}
	}

	return db, nil
}

// fetchArtifact downloads the dataset blob and writes it to the cache
// directory. The write goes through a temp file and rename so a failed
// download never leaves a truncated artifact behind.
func (s *Store) fetchArtifact(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.cfg.CacheDir, 0o755); err != nil {
		return "", &LoadError{Stage: "materialize", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.ArtifactURL, nil)
	if err != nil {
		return "", &LoadError{Stage: "fetch", Err: err}
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return "", &LoadError{Stage: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &LoadError{Stage: "fetch", Err: fmt.Errorf("artifact fetch returned HTTP %d", resp.StatusCode)}
	}

	path := filepath.Join(s.cfg.CacheDir, artifactFile)
	tmp, err := os.CreateTemp(s.cfg.CacheDir, artifactFile+".*")
	if err != nil {
		return "", &LoadError{Stage: "materialize", Err: err}
	}

	if _, err := tmp.ReadFrom(resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", &LoadError{Stage: "materialize", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", &LoadError{Stage: "materialize", Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", &LoadError{Stage: "materialize", Err: err}
	}

	return path, nil
}

// handle returns the open database or ErrNotReady.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, ErrNotReady
	}
	return s.db, nil
}

// Close releases the database handle and returns the store to its
// uninitialized state.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.ready = false
	return err
}
