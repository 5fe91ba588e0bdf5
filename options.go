package codevault

import (
	"io"

	"github.com/codevault/codevault/infrastructure/provider"
	"github.com/codevault/codevault/internal/config"
	"github.com/codevault/codevault/internal/log"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL              string
	completionEndpoint config.Endpoint
	embeddingEndpoint  config.Endpoint
	useOpenAI          bool
	cacheDir           string
	textProvider       provider.TextGenerator
	embeddingProvider  provider.Embedder
	logger             *log.Logger
	searchLimit        int
	embeddingBudget    int
	closers            []io.Closer
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		searchLimit:     config.DefaultSearchLimit,
		embeddingBudget: config.DefaultEmbeddingTextBudget,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithOpenAI sets OpenAI as the AI provider (completions + embeddings)
// using the default models.
func WithOpenAI(apiKey string) Option {
	return func(c *clientConfig) {
		c.useOpenAI = true
		c.completionEndpoint = config.NewEndpoint("", config.DefaultCompletionModel, apiKey)
		c.embeddingEndpoint = config.NewEndpoint("", config.DefaultEmbeddingModel, apiKey)
	}
}

// WithEndpoints sets custom completion and embedding endpoints for the
// OpenAI-compatible provider.
func WithEndpoints(completion, embedding config.Endpoint) Option {
	return func(c *clientConfig) {
		c.useOpenAI = true
		c.completionEndpoint = completion
		c.embeddingEndpoint = embedding
	}
}

// WithResponseCache caches provider responses on disk. Useful for tests and
// local development against a paid API.
func WithResponseCache(dir string) Option {
	return func(c *clientConfig) {
		c.cacheDir = dir
	}
}

// WithProvider sets a custom provider for both completions and embeddings.
func WithProvider(p provider.FullProvider) Option {
	return func(c *clientConfig) {
		c.textProvider = p
		c.embeddingProvider = p
		c.closers = append(c.closers, p)
	}
}

// WithTextProvider sets a custom text generation provider.
func WithTextProvider(p provider.TextGenerator) Option {
	return func(c *clientConfig) {
		c.textProvider = p
	}
}

// WithEmbedder sets a custom embedding provider.
func WithEmbedder(p provider.Embedder) Option {
	return func(c *clientConfig) {
		c.embeddingProvider = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithSearchLimit sets how many snippets retrieval returns by default.
func WithSearchLimit(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// WithEmbeddingBudget caps how many characters of snippet content feed the
// embedding text.
func WithEmbeddingBudget(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.embeddingBudget = n
		}
	}
}
