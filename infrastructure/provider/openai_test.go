package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevault/codevault/internal/config"
)

func chatCompletionJSON(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"model":   "gpt-4o",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
}

func embeddingJSON(vectors [][]float32) map[string]any {
	data := make([]map[string]any, len(vectors))
	for i, v := range vectors {
		data[i] = map[string]any{"object": "embedding", "index": i, "embedding": v}
	}
	return map[string]any{
		"object": "list",
		"model":  "text-embedding-ada-002",
		"data":   data,
		"usage":  map[string]any{"prompt_tokens": 8, "total_tokens": 8},
	}
}

func testProvider(t *testing.T, serverURL string, maxRetries int) *OpenAIProvider {
	t.Helper()
	completion := config.NewEndpoint(serverURL, "gpt-4o", "test-key").
		WithMaxTokens(1500)
	embedding := config.NewEndpoint(serverURL, "text-embedding-ada-002", "test-key").
		WithRetry(maxRetries, time.Millisecond)
	return NewOpenAIProvider(completion, embedding)
}

func TestChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o", req["model"])
		assert.EqualValues(t, 1500, req["max_tokens"])

		_ = json.NewEncoder(w).Encode(chatCompletionJSON("hello from the model"))
	}))
	defer srv.Close()

	p := testProvider(t, srv.URL, 3)

	resp, err := p.ChatCompletion(context.Background(), NewChatCompletionRequest([]Message{
		SystemMessage("system prompt"),
		UserMessage("user prompt"),
	}).WithTemperature(0.2))
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", resp.Content())
	assert.Equal(t, "stop", resp.FinishReason())
	assert.Equal(t, 15, resp.Usage().TotalTokens())
}

func TestChatCompletion_NoRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
	}))
	defer srv.Close()

	p := testProvider(t, srv.URL, 3)

	_, err := p.ChatCompletion(context.Background(), NewChatCompletionRequest([]Message{UserMessage("hi")}))
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "chat_completion", provErr.Operation())
	assert.Equal(t, http.StatusInternalServerError, provErr.StatusCode())
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		_ = json.NewEncoder(w).Encode(embeddingJSON([][]float32{{0.1, 0.2}, {0.3, 0.4}}))
	}))
	defer srv.Close()

	p := testProvider(t, srv.URL, 3)

	resp, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"first", "second"}))
	require.NoError(t, err)

	embeddings := resp.Embeddings()
	require.Len(t, embeddings, 2)
	assert.InDelta(t, 0.1, embeddings[0][0], 1e-6)
	assert.InDelta(t, 0.4, embeddings[1][1], 1e-6)
}

func TestEmbed_EmptyInput(t *testing.T) {
	p := testProvider(t, "http://unused", 3)

	resp, err := p.Embed(context.Background(), NewEmbeddingRequest(nil))
	require.NoError(t, err)
	assert.Empty(t, resp.Embeddings())
}

func TestEmbed_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(embeddingJSON([][]float32{{1, 2}}))
	}))
	defer srv.Close()

	p := testProvider(t, srv.URL, 3)

	resp, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"text"}))
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.Len(t, resp.Embeddings(), 1)
}

func TestEmbed_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "unavailable", "type": "server_error"}}`))
	}))
	defer srv.Close()

	p := testProvider(t, srv.URL, 3)

	_, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"text"}))
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestEmbed_NoRetryOnAuthFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	p := testProvider(t, srv.URL, 3)

	_, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"text"}))
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestEmbed_CountMismatchIsRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_ = json.NewEncoder(w).Encode(embeddingJSON([][]float32{{1}}))
			return
		}
		_ = json.NewEncoder(w).Encode(embeddingJSON([][]float32{{1}, {2}}))
	}))
	defer srv.Close()

	p := testProvider(t, srv.URL, 3)

	resp, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"a", "b"}))
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
	assert.Len(t, resp.Embeddings(), 2)
}

func TestCachingTransport(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(embeddingJSON([][]float32{{0.5}}))
	}))
	defer srv.Close()

	dir := t.TempDir()
	completion := config.NewEndpoint(srv.URL, "gpt-4o", "test-key")
	embedding := config.NewEndpoint(srv.URL, "text-embedding-ada-002", "test-key").
		WithRetry(3, time.Millisecond)
	p := NewOpenAIProvider(completion, embedding, WithResponseCache(dir))

	for i := 0; i < 2; i++ {
		resp, err := p.Embed(context.Background(), NewEmbeddingRequest([]string{"same text"}))
		require.NoError(t, err)
		require.Len(t, resp.Embeddings(), 1)
	}

	assert.EqualValues(t, 1, calls.Load(), "second identical request should be served from cache")
}
