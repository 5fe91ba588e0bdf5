package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevault/codevault"
	"github.com/codevault/codevault/infrastructure/api"
	"github.com/codevault/codevault/infrastructure/api/v1/dto"
	"github.com/codevault/codevault/infrastructure/provider"
	"github.com/codevault/codevault/internal/config"
	"github.com/codevault/codevault/internal/log"
)

// stubProvider answers completions with a fixed string and embeds texts on
// three keyword axes so similarity ranking is deterministic.
type stubProvider struct {
	content string
}

func (p *stubProvider) ChatCompletion(_ context.Context, _ provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	return provider.NewChatCompletionResponse(p.content, "stop", provider.NewUsage(10, 5, 15)), nil
}

func (p *stubProvider) Embed(_ context.Context, req provider.EmbeddingRequest) (provider.EmbeddingResponse, error) {
	texts := req.Texts()
	embeddings := make([][]float64, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		vec := []float64{0.1, 0.1, 0.1}
		for axis, keyword := range []string{"sort", "http", "auth"} {
			if strings.Contains(lower, keyword) {
				vec[axis] += 1.0
			}
		}
		embeddings[i] = vec
	}
	return provider.NewEmbeddingResponse(embeddings, provider.NewUsage(5, 0, 5)), nil
}

func (p *stubProvider) SupportsTextGeneration() bool { return true }
func (p *stubProvider) SupportsEmbedding() bool      { return true }
func (p *stubProvider) Close() error                 { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	client, err := codevault.New(
		codevault.WithSQLite(filepath.Join(t.TempDir(), "test.db")),
		codevault.WithProvider(&stubProvider{content: "Here is an answer."}),
		codevault.WithLogger(log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "ERROR")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	api.NewAPIServer(client).MountRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

// do sends a JSON request and decodes the response body into out when out
// is non-nil. It returns the response status code.
func do(t *testing.T, method, url string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createTestSnippet(t *testing.T, server *httptest.Server, title, language, content string, tags []string) dto.SnippetData {
	t.Helper()

	var resp dto.SnippetResponse
	status := do(t, http.MethodPost, server.URL+"/api/v1/snippets", dto.SnippetRequest{
		Title:    title,
		Content:  content,
		Language: language,
		Tags:     tags,
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, resp.Data.ID)
	return resp.Data
}

func TestSnippets_CRUD(t *testing.T) {
	server := newTestServer(t)

	created := createTestSnippet(t, server, "Bubble sort", "Go",
		"func bubbleSort(nums []int) {}", []string{"go", "algorithms"})
	assert.Equal(t, "Bubble sort", created.Title)
	assert.ElementsMatch(t, []string{"go", "algorithms"}, created.Tags)

	var list dto.SnippetListResponse
	status := do(t, http.MethodGet, server.URL+"/api/v1/snippets", nil, &list)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list.Data, 1)

	// Retrieval counts as a view.
	var got dto.SnippetResponse
	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/1", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, got.Data.ViewCount)

	var updated dto.SnippetResponse
	status = do(t, http.MethodPut, server.URL+"/api/v1/snippets/1", dto.SnippetRequest{
		Title:    "Optimized bubble sort",
		Content:  "func bubbleSort(nums []int) { /* early exit */ }",
		Language: "Go",
		Tags:     []string{"go"},
	}, &updated)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Optimized bubble sort", updated.Data.Title)

	var rated dto.SnippetResponse
	status = do(t, http.MethodPost, server.URL+"/api/v1/snippets/1/rating", dto.RatingRequest{Value: 4}, &rated)
	assert.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 4.0, rated.Data.Rating, 0.001)
	assert.Equal(t, 1, rated.Data.RatingCount)

	status = do(t, http.MethodPost, server.URL+"/api/v1/snippets/1/usage", nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	var used dto.SnippetResponse
	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/1", nil, &used)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, used.Data.UsageCount)

	status = do(t, http.MethodDelete, server.URL+"/api/v1/snippets/1", nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSnippets_BadRequests(t *testing.T) {
	server := newTestServer(t)

	// Validation failure surfaces as 400.
	status := do(t, http.MethodPost, server.URL+"/api/v1/snippets", dto.SnippetRequest{
		Content:  "no title",
		Language: "Go",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/not-a-number", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/search", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSnippets_Search(t *testing.T) {
	server := newTestServer(t)

	createTestSnippet(t, server, "Bubble sort", "Go",
		"func bubbleSort(nums []int) {}", []string{"algorithms"})
	createTestSnippet(t, server, "HTTP server", "Go",
		"func main() { http.ListenAndServe(\":8080\", nil) }", []string{"web"})

	var lexical dto.SnippetListResponse
	status := do(t, http.MethodGet, server.URL+"/api/v1/snippets/search?q=bubble", nil, &lexical)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, lexical.Data, 1)
	assert.Equal(t, "Bubble sort", lexical.Data[0].Title)

	var semantic dto.SnippetListResponse
	status = do(t, http.MethodPost, server.URL+"/api/v1/snippets/search", dto.SearchRequest{
		Query: "how do I sort a slice",
		Limit: 2,
	}, &semantic)
	assert.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, semantic.Data)
	assert.Equal(t, "Bubble sort", semantic.Data[0].Title)
}

func TestSnippets_Metrics(t *testing.T) {
	server := newTestServer(t)
	createTestSnippet(t, server, "Bubble sort", "Go",
		"func bubbleSort(nums []int) {}", nil)

	var metric dto.MetricData
	status := do(t, http.MethodPost, server.URL+"/api/v1/snippets/1/metrics", dto.MetricRequest{
		Name:         "execution_time",
		Value:        "3.2ms",
		NumericValue: 3.2,
		Unit:         "ms",
		Environment:  "local",
	}, &metric)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "execution_time", metric.Name)

	var list dto.MetricListResponse
	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/1/metrics", nil, &list)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list.Data, 1)
	assert.InDelta(t, 3.2, list.Data[0].NumericValue, 0.001)

	status = do(t, http.MethodPost, server.URL+"/api/v1/snippets/999/metrics", dto.MetricRequest{
		Name:  "execution_time",
		Value: "3.2ms",
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSnippets_Complexity(t *testing.T) {
	server := newTestServer(t)
	createTestSnippet(t, server, "Bubble sort", "Go",
		"func bubbleSort(nums []int) {\n\tfor i := range nums {\n\t\tfor j := range nums {\n\t\t\tif nums[i] < nums[j] {\n\t\t\t}\n\t\t}\n\t}\n}", nil)

	var resp dto.ComplexityResponse
	status := do(t, http.MethodGet, server.URL+"/api/v1/snippets/1/complexity", nil, &resp)
	assert.Equal(t, http.StatusOK, status)
	assert.Greater(t, resp.Data.Cyclomatic, 1)
	assert.NotEmpty(t, resp.Data.Level)
	assert.Greater(t, resp.Data.LineCount, 1)
}

func TestSnippets_Security(t *testing.T) {
	server := newTestServer(t)
	createTestSnippet(t, server, "DB connection", "Python",
		"password = \"hunter2-secret\"\nconnect(password)", nil)

	var first dto.ScanResponse
	status := do(t, http.MethodGet, server.URL+"/api/v1/snippets/1/security", nil, &first)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, first.Data.CriticalCount)
	require.NotEmpty(t, first.Data.Findings)
	assert.Equal(t, "Hardcoded Password", first.Data.Findings[0].Title)

	// A second read reuses the stored scan.
	var second dto.ScanResponse
	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/1/security", nil, &second)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, first.Data.ID, second.Data.ID)

	// Rescan always runs fresh.
	var rescan dto.ScanResponse
	status = do(t, http.MethodPost, server.URL+"/api/v1/snippets/1/security/rescan", nil, &rescan)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEqual(t, first.Data.ID, rescan.Data.ID)
}

func TestSnippets_Compare(t *testing.T) {
	server := newTestServer(t)
	createTestSnippet(t, server, "Bubble sort", "Go",
		"func bubbleSort(nums []int) {}", nil)
	createTestSnippet(t, server, "Quick sort", "Go",
		"func quickSort(nums []int) {}", nil)

	var resp dto.CompareResponse
	status := do(t, http.MethodGet, server.URL+"/api/v1/snippets/compare?first=1&second=2", nil, &resp)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp.Report, "# Code Comparison")

	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/compare?first=1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status = do(t, http.MethodGet, server.URL+"/api/v1/snippets/compare?first=1&second=999", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTags_List(t *testing.T) {
	server := newTestServer(t)
	createTestSnippet(t, server, "Bubble sort", "Go",
		"func bubbleSort(nums []int) {}", []string{"go", "algorithms"})
	createTestSnippet(t, server, "HTTP server", "Go",
		"func main() {}", []string{"go"})

	var resp dto.TagListResponse
	status := do(t, http.MethodGet, server.URL+"/api/v1/tags", nil, &resp)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "go", resp.Data[0].Name)
	assert.Equal(t, 2, resp.Data[0].UsageCount)
}

func TestConversations_Lifecycle(t *testing.T) {
	server := newTestServer(t)

	var started dto.ConversationResponse
	status := do(t, http.MethodPost, server.URL+"/api/v1/conversations", dto.StartConversationRequest{
		Message: "Hello!",
	}, &started)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Hello!", started.Data.Title)
	require.Len(t, started.Data.Messages, 2)
	assert.True(t, started.Data.Messages[0].IsFromUser)
	assert.False(t, started.Data.Messages[1].IsFromUser)
	assert.Equal(t, "Here is an answer.", started.Data.Messages[1].Content)

	var reply dto.MessageResponse
	status = do(t, http.MethodPost, server.URL+"/api/v1/conversations/1/messages", dto.SendMessageRequest{
		Content: "Tell me more.",
	}, &reply)
	assert.Equal(t, http.StatusCreated, status)
	assert.False(t, reply.Data.IsFromUser)
	assert.Equal(t, "Here is an answer.", reply.Data.Content)

	var list dto.ConversationListResponse
	status = do(t, http.MethodGet, server.URL+"/api/v1/conversations", nil, &list)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, list.Data, 1)
	assert.Empty(t, list.Data[0].Messages)

	var got dto.ConversationResponse
	status = do(t, http.MethodGet, server.URL+"/api/v1/conversations/1", nil, &got)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, got.Data.Messages, 4)

	status = do(t, http.MethodDelete, server.URL+"/api/v1/conversations/1", nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status = do(t, http.MethodGet, server.URL+"/api/v1/conversations/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestConversations_EmptyMessage(t *testing.T) {
	server := newTestServer(t)

	status := do(t, http.MethodPost, server.URL+"/api/v1/conversations", dto.StartConversationRequest{
		Message: "   ",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAssistant_Completions(t *testing.T) {
	server := newTestServer(t)

	var resp dto.CompletionResponse
	status := do(t, http.MethodPost, server.URL+"/api/v1/assistant/completions", dto.CompletionRequest{
		Prompt: "Hello!",
	}, &resp)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Here is an answer.", resp.Completion)

	status = do(t, http.MethodPost, server.URL+"/api/v1/assistant/completions", dto.CompletionRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}
