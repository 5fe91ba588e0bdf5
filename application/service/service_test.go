package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codevault/codevault/infrastructure/persistence"
	"github.com/codevault/codevault/infrastructure/provider"
	"github.com/codevault/codevault/infrastructure/search"
	"github.com/codevault/codevault/internal/config"
	"github.com/codevault/codevault/internal/database"
	"github.com/codevault/codevault/internal/log"
)

// stubEmbedder derives deterministic vectors from text so similarity
// ranking is predictable in tests.
type stubEmbedder struct {
	vecFor func(text string) []float64
	err    error
	calls  int
}

func (s *stubEmbedder) Embed(_ context.Context, req provider.EmbeddingRequest) (provider.EmbeddingResponse, error) {
	s.calls++
	if s.err != nil {
		return provider.EmbeddingResponse{}, s.err
	}
	embeddings := make([][]float64, len(req.Texts()))
	for i, text := range req.Texts() {
		embeddings[i] = s.vecFor(text)
	}
	return provider.NewEmbeddingResponse(embeddings, provider.Usage{}), nil
}

// keywordVector maps text to a 3-dimensional vector along crude topic axes.
func keywordVector(text string) []float64 {
	lower := strings.ToLower(text)
	vec := []float64{0.1, 0.1, 0.1}
	if strings.Contains(lower, "sort") {
		vec[0] = 1
	}
	if strings.Contains(lower, "http") {
		vec[1] = 1
	}
	if strings.Contains(lower, "auth") {
		vec[2] = 1
	}
	return vec
}

type stubGenerator struct {
	content string
	err     error
	lastReq provider.ChatCompletionRequest
	calls   int
}

func (s *stubGenerator) ChatCompletion(_ context.Context, req provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return provider.ChatCompletionResponse{}, s.err
	}
	return provider.NewChatCompletionResponse(s.content, "stop", provider.Usage{}), nil
}

// testEnv wires the service layer over a temp sqlite database and stub
// providers.
type testEnv struct {
	db        database.Database
	snippets  *Snippet
	analysis  *Analysis
	assistant *Assistant
	chats     *Conversation
	embedder  *stubEmbedder
	generator *stubGenerator
	store     persistence.SnippetStore
	metrics   persistence.MetricStore
	scans     persistence.ScanStore
	vectors   *search.VectorStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewDatabase(ctx, "sqlite:///"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, persistence.AutoMigrate(ctx, db))
	require.NoError(t, search.Migrate(ctx, db))

	logger := log.NewLoggerWithWriter(io.Discard, config.LogFormatJSON, "ERROR")
	embedder := &stubEmbedder{vecFor: keywordVector}
	generator := &stubGenerator{content: "Here is an answer."}

	snippetStore := persistence.NewSnippetStore(db)
	tagStore := persistence.NewTagStore(db)
	metricStore := persistence.NewMetricStore(db)
	scanStore := persistence.NewScanStore(db)
	vectors := search.NewVectorStore(db, logger)

	snippets := NewSnippet(
		snippetStore, tagStore, metricStore,
		embedder, vectors,
		config.DefaultEmbeddingModel, config.DefaultEmbeddingTextBudget, config.DefaultSearchLimit,
		logger,
	)
	analysisSvc := NewAnalysis(snippetStore, metricStore, scanStore, logger)
	assistantSvc := NewAssistant(snippets, analysisSvc, generator, config.DefaultSearchLimit, logger)
	chats := NewConversation(persistence.NewConversationStore(db), assistantSvc, logger)

	return &testEnv{
		db:        db,
		snippets:  snippets,
		analysis:  analysisSvc,
		assistant: assistantSvc,
		chats:     chats,
		embedder:  embedder,
		generator: generator,
		store:     snippetStore,
		metrics:   metricStore,
		scans:     scanStore,
		vectors:   vectors,
	}
}
