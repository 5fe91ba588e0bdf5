package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/codevault/codevault/internal/config"
)

// errEmptyEmbeddingResponse indicates the API returned fewer embedding
// vectors than requested. Retryable because transient upstream issues can
// produce partial responses behind a 200 status.
var errEmptyEmbeddingResponse = errors.New("embedding response count mismatch")

// OpenAIProvider implements text generation and embedding against the
// OpenAI API. Embedding calls retry on transient failures with a linearly
// growing delay; chat completions are issued exactly once so the caller
// can map failures to user-facing fallback messages.
type OpenAIProvider struct {
	client         *openai.Client
	chatModel      string
	embeddingModel string
	maxTokens      int
	maxRetries     int
	initialDelay   time.Duration
}

// OpenAIOption is a functional option for OpenAIProvider.
type OpenAIOption func(*openaiSettings)

type openaiSettings struct {
	httpClient *http.Client
	cacheDir   string
}

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(s *openaiSettings) { s.httpClient = c }
}

// WithResponseCache stores successful API responses on disk under dir so
// repeated identical requests are served locally.
func WithResponseCache(dir string) OpenAIOption {
	return func(s *openaiSettings) { s.cacheDir = dir }
}

// NewOpenAIProvider creates a provider from a completion and an embedding
// endpoint. The completion endpoint supplies the chat model, token limit,
// API key, and base URL; the embedding endpoint supplies the embedding
// model and retry policy.
func NewOpenAIProvider(completion, embedding config.Endpoint, opts ...OpenAIOption) *OpenAIProvider {
	var settings openaiSettings
	for _, opt := range opts {
		opt(&settings)
	}

	clientConfig := openai.DefaultConfig(completion.APIKey())
	if completion.BaseURL() != "" {
		clientConfig.BaseURL = completion.BaseURL()
	}

	httpClient := settings.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: completion.Timeout()}
	}
	if settings.cacheDir != "" {
		httpClient.Transport = NewCachingTransport(settings.cacheDir, httpClient.Transport)
	}
	clientConfig.HTTPClient = httpClient

	return &OpenAIProvider{
		client:         openai.NewClientWithConfig(clientConfig),
		chatModel:      completion.Model(),
		embeddingModel: embedding.Model(),
		maxTokens:      completion.MaxTokens(),
		maxRetries:     embedding.MaxRetries(),
		initialDelay:   embedding.InitialDelay(),
	}
}

// SupportsTextGeneration returns true.
func (p *OpenAIProvider) SupportsTextGeneration() bool { return true }

// SupportsEmbedding returns true.
func (p *OpenAIProvider) SupportsEmbedding() bool { return true }

// Close is a no-op for the OpenAI provider.
func (p *OpenAIProvider) Close() error { return nil }

// ChatCompletion generates a chat completion. The request is sent exactly
// once; transient failures surface as ProviderError for the caller to
// translate.
func (p *OpenAIProvider) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages()))
	for i, m := range req.Messages() {
		messages[i] = openai.ChatCompletionMessage{
			Role:    m.Role(),
			Content: m.Content(),
		}
	}

	openaiReq := openai.ChatCompletionRequest{
		Model:     p.chatModel,
		Messages:  messages,
		MaxTokens: p.maxTokens,
	}
	if req.MaxTokens() > 0 {
		openaiReq.MaxTokens = req.MaxTokens()
	}
	if req.Temperature() > 0 {
		openaiReq.Temperature = float32(req.Temperature())
	}

	resp, err := p.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return ChatCompletionResponse{}, p.wrapError("chat_completion", err)
	}

	if len(resp.Choices) == 0 {
		return ChatCompletionResponse{}, NewProviderError(
			"chat_completion", 0, "no choices in response", nil,
		)
	}

	usage := NewUsage(
		resp.Usage.PromptTokens,
		resp.Usage.CompletionTokens,
		resp.Usage.TotalTokens,
	)

	return NewChatCompletionResponse(
		resp.Choices[0].Message.Content,
		string(resp.Choices[0].FinishReason),
		usage,
	), nil
}

// Embed generates embeddings for the given texts in a single API call,
// retrying transient failures.
func (p *OpenAIProvider) Embed(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error) {
	texts := req.Texts()
	if len(texts) == 0 {
		return NewEmbeddingResponse([][]float64{}, NewUsage(0, 0, 0)), nil
	}

	openaiReq := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.embeddingModel),
		Input: texts,
	}

	var resp openai.EmbeddingResponse

	err := p.withRetry(ctx, func() error {
		var callErr error
		resp, callErr = p.client.CreateEmbeddings(ctx, openaiReq)
		if callErr != nil {
			return callErr
		}
		if len(resp.Data) != len(texts) {
			return fmt.Errorf("%w: got %d vectors for %d texts",
				errEmptyEmbeddingResponse, len(resp.Data), len(texts))
		}
		return nil
	})
	if err != nil {
		return EmbeddingResponse{}, p.wrapError("embedding", err)
	}

	embeddings := make([][]float64, len(resp.Data))
	for i, data := range resp.Data {
		embeddings[i] = make([]float64, len(data.Embedding))
		for j, v := range data.Embedding {
			embeddings[i][j] = float64(v)
		}
	}

	usage := NewUsage(resp.Usage.PromptTokens, 0, resp.Usage.TotalTokens)
	return NewEmbeddingResponse(embeddings, usage), nil
}

// withRetry executes fn up to maxRetries times. The wait before retry
// attempt n is n times the initial delay.
func (p *OpenAIProvider) withRetry(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !p.isRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * p.initialDelay):
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryable reports whether an embedding error is worth retrying:
// rate limits, server errors, and timeouts.
func (p *OpenAIProvider) isRetryable(err error) bool {
	if errors.Is(err, errEmptyEmbeddingResponse) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// wrapError wraps an OpenAI error into a ProviderError.
func (p *OpenAIProvider) wrapError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError(operation, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewProviderError(operation, reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return NewProviderError(operation, 0, err.Error(), err)
}

var (
	_ FullProvider  = (*OpenAIProvider)(nil)
	_ TextGenerator = (*OpenAIProvider)(nil)
	_ Embedder      = (*OpenAIProvider)(nil)
)
