// Package codevault provides a library for storing, searching and analyzing
// code snippets with LLM-assisted completions.
//
// Snippets are indexed with vector embeddings for semantic search, with a
// lexical fallback when no embedding provider is reachable. The assistant
// grounds completions in retrieved snippets and enriches them with static
// analysis: complexity, optimization hints, security scanning and pairwise
// comparison.
//
// Basic usage:
//
//	client, err := codevault.New(
//	    codevault.WithSQLite(".codevault/data.db"),
//	    codevault.WithOpenAI(os.Getenv("OPENAI_API_KEY")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Store a snippet
//	sn, err := client.Snippets.Create(ctx, "Binary search", code, "Go", "classic search", []string{"algorithms"})
//
//	// Semantic search
//	results, err := client.Snippets.SearchSemantic(ctx, "find element in sorted slice", "", 3)
//
//	// Grounded completion
//	answer := client.Assistant.Complete(ctx, "Explain how the binary search snippet works")
package codevault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/codevault/codevault/application/service"
	"github.com/codevault/codevault/infrastructure/persistence"
	"github.com/codevault/codevault/infrastructure/provider"
	"github.com/codevault/codevault/infrastructure/search"
	"github.com/codevault/codevault/internal/config"
	"github.com/codevault/codevault/internal/database"
	"github.com/codevault/codevault/internal/log"
)

// Construction errors.
var (
	// ErrNoDatabase indicates no database was configured.
	ErrNoDatabase = errors.New("codevault: no database configured, use WithSQLite or WithPostgres")

	// ErrNoProvider indicates no completion or embedding provider was
	// configured.
	ErrNoProvider = errors.New("codevault: no provider configured, use WithOpenAI or WithProvider")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("codevault: client is closed")
)

// Client is the main entry point for the codevault library.
//
// Access resources via struct fields:
//
//	client.Snippets.SearchSemantic(ctx, "parse json", "", 3)
//	client.Analysis.Scan(ctx, snippetID)
//	client.Assistant.Complete(ctx, prompt)
type Client struct {
	Snippets      *service.Snippet
	Analysis      *service.Analysis
	Assistant     *service.Assistant
	Conversations *service.Conversation

	db      database.Database
	vectors *search.VectorStore
	logger  *log.Logger
	closers []io.Closer
	closed  atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.Default()
	}

	textProvider := cfg.textProvider
	embeddingProvider := cfg.embeddingProvider
	if (textProvider == nil || embeddingProvider == nil) && cfg.useOpenAI {
		var provOpts []provider.OpenAIOption
		if cfg.cacheDir != "" {
			provOpts = append(provOpts, provider.WithResponseCache(cfg.cacheDir))
		}
		p := provider.NewOpenAIProvider(cfg.completionEndpoint, cfg.embeddingEndpoint, provOpts...)
		if textProvider == nil {
			textProvider = p
		}
		if embeddingProvider == nil {
			embeddingProvider = p
		}
		cfg.closers = append(cfg.closers, p)
	}
	if textProvider == nil || embeddingProvider == nil {
		return nil, ErrNoProvider
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(ctx, db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}
	if err := search.Migrate(ctx, db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("migrate embeddings: %w", err), errClose)
	}

	snippetStore := persistence.NewSnippetStore(db)
	tagStore := persistence.NewTagStore(db)
	metricStore := persistence.NewMetricStore(db)
	scanStore := persistence.NewScanStore(db)
	conversationStore := persistence.NewConversationStore(db)
	vectors := search.NewVectorStore(db, logger)

	embeddingModel := cfg.embeddingEndpoint.Model()
	if embeddingModel == "" {
		embeddingModel = config.DefaultEmbeddingModel
	}

	snippets := service.NewSnippet(
		snippetStore, tagStore, metricStore,
		embeddingProvider, vectors,
		embeddingModel, cfg.embeddingBudget, cfg.searchLimit,
		logger,
	)
	analysis := service.NewAnalysis(snippetStore, metricStore, scanStore, logger)
	assistant := service.NewAssistant(snippets, analysis, textProvider, cfg.searchLimit, logger)
	conversations := service.NewConversation(conversationStore, assistant, logger)

	return &Client{
		Snippets:      snippets,
		Analysis:      analysis,
		Assistant:     assistant,
		Conversations: conversations,
		db:            db,
		vectors:       vectors,
		logger:        logger,
		closers:       cfg.closers,
	}, nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger {
	return c.logger
}

// Close releases the database and any provider resources. Close is
// idempotent.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.db.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
