package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Available(t *testing.T) {
	t.Parallel()

	assert.True(t, NewClient("key", "", 0).Available())
	assert.False(t, NewClient("", "", 0).Available())
}

func TestClient_SearchWithoutKeyFailsFast(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request without API key")
	}))
	defer server.Close()

	_, ok := NewClient("", server.URL, 1).Search(context.Background(), "anything")
	assert.False(t, ok)
}

func TestClient_SearchFormatsResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tavilyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "secret", req.APIKey)
		assert.Equal(t, "weather Budapest today", req.Query)
		assert.Equal(t, "basic", req.SearchDepth)
		assert.True(t, req.IncludeAnswer)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tavilyResponse{
			Query:  req.Query,
			Answer: "22 degrees and clear",
			Results: []tavilyResult{
				{Title: "Budapest Weather", URL: "https://example.com/w", Content: "Sunny, 22C"},
			},
		})
	}))
	defer server.Close()

	results, ok := NewClient("secret", server.URL, 1).Search(context.Background(), "weather Budapest today")
	require.True(t, ok)
	assert.Contains(t, results, "Summary: 22 degrees and clear")
	assert.Contains(t, results, "[Source 1] Budapest Weather")
	assert.Contains(t, results, "Sunny, 22C")
	assert.Contains(t, results, "URL: https://example.com/w")
}

func TestClient_EmptyResultsRetriedThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if atomic.AddInt32(&calls, 1) == 1 {
			_ = json.NewEncoder(w).Encode(tavilyResponse{})
			return
		}
		_ = json.NewEncoder(w).Encode(tavilyResponse{
			Results: []tavilyResult{{Title: "Hit", Content: "found it"}},
		})
	}))
	defer server.Close()

	results, ok := NewClient("secret", server.URL, 3).Search(context.Background(), "anything")
	require.True(t, ok)
	assert.Contains(t, results, "found it")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_AllAttemptsFail(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	results, ok := NewClient("secret", server.URL, 3).Search(context.Background(), "anything")
	assert.False(t, ok)
	assert.Empty(t, results)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_CancelledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request after cancellation")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := NewClient("secret", server.URL, 3).Search(ctx, "anything")
	assert.False(t, ok)
}

func TestFormatResults_TruncatesLongContent(t *testing.T) {
	t.Parallel()

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'x'
	}

	out := formatResults(&tavilyResponse{
		Results: []tavilyResult{{Title: "Long", Content: string(long)}},
	})
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, string(long))
}
