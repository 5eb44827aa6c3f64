package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *Config {
	return &Config{
		APIURL:      url,
		Model:       "test-model",
		MaxTokens:   100,
		Temperature: 0.7,
		Timeout:     5,
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewClient(&Config{Model: "m", MaxTokens: 10, Temperature: 0.5, Timeout: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API URL")
}

func TestNewClient_NoAPIKeyRequired(t *testing.T) {
	t.Parallel()

	client, err := NewClient(testConfig("http://localhost:11434/v1"))
	require.NoError(t, err)
	assert.Equal(t, "test-model", client.Model())
}

func TestComplete_NonStreaming(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{Message: Assistant("  Hello there!  ")}},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL + "/v1"))
	require.NoError(t, err)

	text, err := client.Complete(context.Background(), []Message{
		System("rules"),
		User("hi"),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", text)
}

func TestComplete_BearerTokenSent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Choices: []Choice{{Message: Assistant("ok")}},
		})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.APIKey = "secret"
	client, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{User("hi")}, nil)
	require.NoError(t, err)
}

func TestComplete_Streaming(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n" +
				": keepalive comment\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"!\"}}]}\n\n" +
				"data: [DONE]\n\n"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	var chunks []string
	text, err := client.Complete(context.Background(), []Message{User("hi")}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", text)
	assert.Equal(t, []string{"Hel", "lo", "!"}, chunks)
}

func TestComplete_StreamingAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(`data: {"error":{"message":"model not found","type":"invalid_request"}}` + "\n\n"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{User("hi")}, func(string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestComplete_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{User("hi")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestComplete_NoChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), []Message{User("hi")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestChatCompletion_APIErrorPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{
			Error: &Error{Message: "context length exceeded", Type: "invalid_request"},
		})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.ChatCompletion(context.Background(), []Message{User("hi")})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "context length exceeded"))
}
