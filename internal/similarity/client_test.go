// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package similarity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tmrna-search/pkg/types"
)

func testClient(url string) *Client {
	return NewClient(types.SimilarityConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1"},
		BaseURL:    url,
		MaxRetries: 1,
	})
}

func similarityPayload(identifier string, similarity float64) map[string]any {
	return map[string]any{
		"identifier":     identifier,
		"organism_name":  "Escherichia coli",
		"tag_peptide":    "AANDENYALAA",
		"codons":         "gca-gca-aac",
		"tmrna_sequence": "ggggctgatt",
		"similarity":     similarity,
		"e_value":        "N/A",
		"algorithm":      "BLOSUM62",
	}
}

func TestSearchPeptide(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"results":     []any{similarityPayload("Ecoli_K12_1", 92.5)},
			"total":       1,
			"search_time": 3.21,
			"threshold":   85.0,
			"algorithm":   "BLOSUM62",
		})
	}))
	defer ts.Close()

	out, err := testClient(ts.URL).SearchPeptide(context.Background(), "aande nyalaa*", 85)
	require.NoError(t, err)

	assert.Equal(t, "/api/search/peptide", gotPath)
	// Sequence is cleaned before it goes on the wire.
	assert.Equal(t, "AANDENYALAA", gotBody["sequence"])
	assert.Equal(t, 85.0, gotBody["threshold"])

	require.Len(t, out.Results, 1)
	r := out.Results[0]
	assert.Equal(t, "Ecoli_K12_1", r.Identifier)
	require.NotNil(t, r.Similarity)
	assert.Equal(t, 92.5, *r.Similarity)
	assert.Equal(t, "N/A", r.EValue)
	assert.Equal(t, 3.21, out.SearchTime)
}

func TestSearchCodonCleansSequence(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}, "search_time": 0.5})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).SearchCodon(context.Background(), "GCA-GCT-AAT-GCA-GCA-AAC", 60)
	require.NoError(t, err)

	assert.Equal(t, "/api/search/codon", gotPath)
	assert.Equal(t, "gcagctaatgcagcaaac", gotBody["sequence"])
}

func TestSearchSequenceTooShort(t *testing.T) {
	c := testClient("http://127.0.0.1:0")

	_, err := c.SearchPeptide(context.Background(), "A?*", 50)
	assert.ErrorContains(t, err, "too short")

	_, err = c.SearchCodon(context.Background(), "gca-gct", 50)
	assert.ErrorContains(t, err, "too short")
}

func TestSearchThresholdOutOfRange(t *testing.T) {
	c := testClient("http://127.0.0.1:0")

	_, err := c.SearchPeptide(context.Background(), "AANDENYALAA", 150)
	assert.ErrorContains(t, err, "out of range")
}

func TestSearchServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Sequence too short (minimum 3 amino acids)"})
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).SearchPeptide(context.Background(), "AANDENYALAA", 50)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	// The server-reported message comes through verbatim.
	assert.Equal(t, "Sequence too short (minimum 3 amino acids)", svcErr.Message)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestSearchServiceErrorWithoutPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).SearchPeptide(context.Background(), "AANDENYALAA", 50)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Contains(t, svcErr.Message, "HTTP 502")
}

func TestSearchTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close() // connection refused from here on

	_, err := testClient(ts.URL).SearchPeptide(context.Background(), "AANDENYALAA", 50)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, err.Error(), "no response from server")
}

func TestGetInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/info", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"total_records":    6768,
			"unique_organisms": 5320,
			"database_size_mb": 42.7,
		})
	}))
	defer ts.Close()

	info, err := testClient(ts.URL).GetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6768, info.TotalRecords)
	assert.Equal(t, 5320, info.UniqueOrganisms)
}

func TestGetHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "healthy", "database": true, "diamond": true, "blat": false,
		})
	}))
	defer ts.Close()

	h := testClient(ts.URL).GetHealth(context.Background())
	assert.Equal(t, "healthy", h.Status)
	assert.True(t, h.Database)
	assert.False(t, h.Codon)
}

func TestGetHealthUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	h := testClient(ts.URL).GetHealth(context.Background())
	assert.Equal(t, "unavailable", h.Status)
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
	}))
	defer ts.Close()

	c := NewClient(types.SimilarityConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second},
		BaseURL:    ts.URL,
		APIToken:   "sekrit",
	})
	_, err := c.SearchPeptide(context.Background(), "AANDENYALAA", 50)
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", gotAuth)
}
