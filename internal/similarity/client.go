// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package similarity is a thin client for the remote tmRNA similarity
// scoring service. Scoring itself (BLOSUM62 peptide alignment, nucleotide
// alignment for codons) runs service-side; this package only shapes
// requests and surfaces results and failures.
package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/tmrna-search/internal/httputil"
	"github.com/pdiddy/tmrna-search/pkg/types"
)

const (
	peptidePath = "/api/search/peptide"
	codonPath   = "/api/search/codon"
	infoPath    = "/api/info"
	healthPath  = "/api/health"

	defaultTimeout = 120 * time.Second
)

// TransportError reports a similarity request that produced no response at
// all (connection refused, timeout, DNS failure). It is distinct from
// ServiceError so callers can word the two failure modes differently.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "no response from server: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError reports an error payload returned by the similarity
// service. Message carries the server-reported text verbatim.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// Output holds one similarity search response.
type Output struct {
	Results     []types.Record `json:"results"`
	Total       int            `json:"total"`
	SearchTime  float64        `json:"search_time"`
	QueryLength int            `json:"query_length"`
	Threshold   float64        `json:"threshold"`
	Algorithm   string         `json:"algorithm"`
}

// Info holds dataset metadata reported by the service.
type Info struct {
	TotalRecords    int     `json:"total_records"`
	UniqueOrganisms int     `json:"unique_organisms"`
	DatabaseSizeMB  float64 `json:"database_size_mb"`
}

// Health holds the service health report. A service that cannot be
// reached yields Status "unavailable" rather than an error.
type Health struct {
	Status   string `json:"status"`
	Database bool   `json:"database"`
	Peptide  bool   `json:"diamond"`
	Codon    bool   `json:"blat"`
}

// Client calls the similarity service over HTTP.
type Client struct {
	cfg    types.SimilarityConfig
	client *http.Client
}

// NewClient returns a Client for the configured service.
func NewClient(cfg types.SimilarityConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// SearchPeptide runs a peptide similarity search. The sequence is cleaned
// (stop markers, unknown residues, whitespace stripped; uppercased) and
// length-checked before any request is made. Threshold is a percentage
// minimum similarity, 0-100.
func (c *Client) SearchPeptide(ctx context.Context, sequence string, threshold float64) (Output, error) {
	cleaned, err := validatePeptide(sequence)
	if err != nil {
		return Output{}, err
	}
	return c.search(ctx, peptidePath, cleaned, threshold)
}

// SearchCodon runs a codon similarity search. The sequence is cleaned
// (hyphens and whitespace stripped; lowercased) and length-checked before
// any request is made.
func (c *Client) SearchCodon(ctx context.Context, sequence string, threshold float64) (Output, error) {
	cleaned, err := validateCodon(sequence)
	if err != nil {
		return Output{}, err
	}
	return c.search(ctx, codonPath, cleaned, threshold)
}

func (c *Client) search(ctx context.Context, path, sequence string, threshold float64) (Output, error) {
	if threshold < 0 || threshold > 100 {
		return Output{}, fmt.Errorf("threshold %v out of range 0-100", threshold)
	}

	body, err := json.Marshal(map[string]any{
		"sequence":  sequence,
		"threshold": threshold,
	})
	if err != nil {
		return Output{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return Output{}, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.cfg.MaxRetries)
	if err != nil {
		return Output{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Output{}, decodeServiceError(resp)
	}

	var out Output
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Output{}, fmt.Errorf("parsing similarity response: %w", err)
	}
	return out, nil
}

// GetInfo fetches dataset metadata from the service. Callers treat
// failures as non-fatal.
func (c *Client) GetInfo(ctx context.Context) (Info, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+infoPath, nil)
	if err != nil {
		return Info{}, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return Info{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Info{}, decodeServiceError(resp)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Info{}, fmt.Errorf("parsing info response: %w", err)
	}
	return info, nil
}

// GetHealth fetches the service health report. It never returns an error:
// an unreachable or failing service reports Status "unavailable".
func (c *Client) GetHealth(ctx context.Context) Health {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+healthPath, nil)
	if err != nil {
		return Health{Status: "unavailable"}
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return Health{Status: "unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Health{Status: "unavailable"}
	}

	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return Health{Status: "unavailable"}
	}
	return h
}

func (c *Client) setHeaders(req *http.Request) {
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIToken)
	}
}

// decodeServiceError extracts the server-reported error message from a
// non-2xx response, falling back to the HTTP status when the body is not
// the expected {"error": ...} payload.
func decodeServiceError(resp *http.Response) *ServiceError {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return &ServiceError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &ServiceError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("similarity service returned HTTP %d", resp.StatusCode),
	}
}
