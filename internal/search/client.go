package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hbalint/jarvis/pkg/log"
)

// DefaultMaxRetries is the attempt budget for one Search call
const DefaultMaxRetries = 3

// Client issues web searches against the Tavily API. Failure is a
// value: Search reports ok=false after exhausting its retries and never
// returns an error to propagate.
type Client struct {
	apiKey     string
	apiURL     string
	maxRetries int
	httpClient *http.Client
}

// tavilyRequest represents a request to the Tavily API
type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"`
	IncludeAnswer bool   `json:"include_answer,omitempty"`
	MaxResults    int    `json:"max_results,omitempty"`
}

// tavilyResponse represents a response from the Tavily API
type tavilyResponse struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer,omitempty"`
	Results []tavilyResult `json:"results"`
}

// tavilyResult is a single ranked snippet
type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// NewClient creates a search client. An empty apiKey leaves the client
// constructed but unavailable.
func NewClient(apiKey, apiURL string, maxRetries int) *Client {
	if apiURL == "" {
		apiURL = "https://api.tavily.com/search"
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Client{
		apiKey:     apiKey,
		apiURL:     apiURL,
		maxRetries: maxRetries,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Available reports whether the client can reach the search provider
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Search runs the query with bounded retries. An attempt returning no
// results counts as retryable, same as a transport failure. The second
// return is false only after all attempts are spent or the context is
// cancelled.
func (c *Client) Search(ctx context.Context, query string) (string, bool) {
	if !c.Available() {
		return "", false
	}

	log.Info("searching the web for: %s", query)
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", false
		}

		response, err := c.search(ctx, query)
		if err != nil {
			log.Warn("search attempt %d/%d failed: %v", attempt, c.maxRetries, err)
			continue
		}
		if len(response.Results) == 0 && response.Answer == "" {
			log.Warn("no results found, retrying (%d/%d)", attempt, c.maxRetries)
			continue
		}
		return formatResults(response), true
	}

	log.Warn("no useful results for %q after %d attempts", query, c.maxRetries)
	return "", false
}

func (c *Client) search(ctx context.Context, query string) (*tavilyResponse, error) {
	request := tavilyRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
		MaxResults:    8,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &parsed, nil
}

// formatResults renders the ranked snippets as plain text for the model
func formatResults(resp *tavilyResponse) string {
	var out bytes.Buffer

	if resp.Answer != "" {
		out.WriteString(fmt.Sprintf("Summary: %s\n", resp.Answer))
	}
	for i, r := range resp.Results {
		content := r.Content
		if len(content) > 500 {
			content = content[:500] + "..."
		}
		out.WriteString(fmt.Sprintf("\n[Source %d] %s\n", i+1, r.Title))
		out.WriteString(content + "\n")
		if r.URL != "" {
			out.WriteString(fmt.Sprintf("URL: %s\n", r.URL))
		}
	}
	return out.String()
}
