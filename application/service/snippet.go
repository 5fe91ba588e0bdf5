// Package service provides application layer services that orchestrate domain operations.
package service

import (
	"context"
	"fmt"

	"github.com/codevault/codevault/domain/snippet"
	"github.com/codevault/codevault/infrastructure/provider"
	"github.com/codevault/codevault/infrastructure/search"
	"github.com/codevault/codevault/internal/log"
)

// Snippet provides snippet CRUD, search and metric operations. Writes keep
// the vector index up to date; indexing failures never fail the write.
type Snippet struct {
	snippets snippet.Store
	tags     snippet.TagStore
	metrics  snippet.MetricStore
	embedder provider.Embedder
	vectors  *search.VectorStore
	model    string
	budget   int
	limit    int
	logger   *log.Logger
}

// NewSnippet creates a new Snippet service.
func NewSnippet(
	snippets snippet.Store,
	tags snippet.TagStore,
	metrics snippet.MetricStore,
	embedder provider.Embedder,
	vectors *search.VectorStore,
	model string,
	budget int,
	limit int,
	logger *log.Logger,
) *Snippet {
	return &Snippet{
		snippets: snippets,
		tags:     tags,
		metrics:  metrics,
		embedder: embedder,
		vectors:  vectors,
		model:    model,
		budget:   budget,
		limit:    limit,
		logger:   logger,
	}
}

// Create validates and persists a new snippet, records tag usage and
// indexes it for semantic search.
func (s *Snippet) Create(ctx context.Context, title, content, language, description string, tags []string) (snippet.Snippet, error) {
	sn, err := snippet.NewSnippet(title, content, language, description, tags)
	if err != nil {
		return snippet.Snippet{}, err
	}

	created, err := s.snippets.Create(ctx, sn)
	if err != nil {
		return snippet.Snippet{}, fmt.Errorf("create snippet: %w", err)
	}

	if err := s.tags.Upsert(ctx, created.Tags()); err != nil {
		s.logger.WarnContext(ctx, "failed to record tag usage", "snippet_id", created.ID(), "error", err)
	}

	s.index(ctx, created)
	return created, nil
}

// Get returns a snippet by ID and advances its view counter.
func (s *Snippet) Get(ctx context.Context, id int64) (snippet.Snippet, error) {
	sn, err := s.snippets.Get(ctx, id)
	if err != nil {
		return snippet.Snippet{}, err
	}

	if err := s.snippets.IncrementViewCount(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to increment view count", "snippet_id", id, "error", err)
		return sn, nil
	}
	return sn.WithViewIncrement(), nil
}

// List returns all snippets, most recently created first.
func (s *Snippet) List(ctx context.Context) ([]snippet.Snippet, error) {
	return s.snippets.List(ctx)
}

// Update applies new details to an existing snippet, records tag usage and
// reindexes it.
func (s *Snippet) Update(ctx context.Context, id int64, title, content, language, description string, tags []string) (snippet.Snippet, error) {
	current, err := s.snippets.Get(ctx, id)
	if err != nil {
		return snippet.Snippet{}, err
	}

	changed, err := current.WithDetails(title, content, language, description, tags)
	if err != nil {
		return snippet.Snippet{}, err
	}

	updated, err := s.snippets.Update(ctx, changed)
	if err != nil {
		return snippet.Snippet{}, fmt.Errorf("update snippet: %w", err)
	}

	if err := s.tags.Upsert(ctx, updated.Tags()); err != nil {
		s.logger.WarnContext(ctx, "failed to record tag usage", "snippet_id", updated.ID(), "error", err)
	}

	s.index(ctx, updated)
	return updated, nil
}

// Delete removes a snippet, its dependent rows and its vector.
func (s *Snippet) Delete(ctx context.Context, id int64) error {
	if err := s.snippets.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.vectors.Delete(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "failed to delete embedding", "snippet_id", id, "error", err)
	}
	return nil
}

// Rate records a rating between 1 and 5 and returns the updated snippet.
func (s *Snippet) Rate(ctx context.Context, id int64, value int) (snippet.Snippet, error) {
	current, err := s.snippets.Get(ctx, id)
	if err != nil {
		return snippet.Snippet{}, err
	}

	rated, err := current.WithRating(value)
	if err != nil {
		return snippet.Snippet{}, err
	}
	return s.snippets.Update(ctx, rated)
}

// ByTag returns snippets carrying the given tag.
func (s *Snippet) ByTag(ctx context.Context, tag string) ([]snippet.Snippet, error) {
	return s.snippets.ByTag(ctx, tag)
}

// ByLanguage returns snippets in the given language.
func (s *Snippet) ByLanguage(ctx context.Context, language string) ([]snippet.Snippet, error) {
	return s.snippets.ByLanguage(ctx, language)
}

// Tags returns all known tags ordered by usage.
func (s *Snippet) Tags(ctx context.Context) ([]snippet.Tag, error) {
	return s.tags.List(ctx)
}

// AddMetric records a performance metric for a snippet.
func (s *Snippet) AddMetric(ctx context.Context, snippetID int64, name, value string, numericValue float64, unit, environment, notes string) (snippet.Metric, error) {
	if _, err := s.snippets.Get(ctx, snippetID); err != nil {
		return snippet.Metric{}, err
	}
	return s.metrics.Add(ctx, snippet.NewMetric(snippetID, name, value, numericValue, unit, environment, notes))
}

// Metrics returns all performance metrics for a snippet, newest first.
func (s *Snippet) Metrics(ctx context.Context, snippetID int64) ([]snippet.Metric, error) {
	return s.metrics.BySnippet(ctx, snippetID)
}

// SearchLexical performs keyword search over titles, content, descriptions
// and tags.
func (s *Snippet) SearchLexical(ctx context.Context, query, language string, limit int) ([]snippet.Snippet, error) {
	if limit <= 0 {
		limit = s.limit
	}
	return s.snippets.Search(ctx, query, language, limit)
}

// SearchSemantic ranks snippets by embedding similarity to the query,
// optionally constrained to one language. Any failure on the vector path
// degrades to lexical search; it never propagates.
func (s *Snippet) SearchSemantic(ctx context.Context, query, language string, limit int) ([]snippet.Snippet, error) {
	if limit <= 0 {
		limit = s.limit
	}

	resp, err := s.embedder.Embed(ctx, provider.NewEmbeddingRequest([]string{query}))
	if err != nil {
		s.logger.WarnContext(ctx, "embedding failed, falling back to lexical search", "error", err)
		return s.snippets.Search(ctx, query, language, limit)
	}

	matches, err := s.vectors.Search(ctx, resp.Embeddings()[0], limit, language)
	if err != nil {
		s.logger.WarnContext(ctx, "vector search failed, falling back to lexical search", "error", err)
		return s.snippets.Search(ctx, query, language, limit)
	}
	if len(matches) == 0 {
		return s.snippets.Search(ctx, query, language, limit)
	}

	results := make([]snippet.Snippet, 0, len(matches))
	for _, m := range matches {
		sn, err := s.snippets.Get(ctx, m.SnippetID())
		if err != nil {
			s.logger.WarnContext(ctx, "indexed snippet missing", "snippet_id", m.SnippetID(), "error", err)
			continue
		}
		results = append(results, sn)
	}
	return results, nil
}

// MarkViewed advances a snippet's view counter.
func (s *Snippet) MarkViewed(ctx context.Context, id int64) error {
	return s.snippets.IncrementViewCount(ctx, id)
}

// MarkUsed advances a snippet's usage counter.
func (s *Snippet) MarkUsed(ctx context.Context, id int64) error {
	return s.snippets.IncrementUsageCount(ctx, id)
}

// Reindex regenerates the embedding for every stored snippet.
func (s *Snippet) Reindex(ctx context.Context) error {
	snippets, err := s.snippets.List(ctx)
	if err != nil {
		return err
	}
	for _, sn := range snippets {
		if err := s.indexOne(ctx, sn); err != nil {
			return fmt.Errorf("reindex snippet %d: %w", sn.ID(), err)
		}
	}
	return nil
}

// index stores or refreshes a snippet's embedding. Failures are logged and
// absorbed so a flaky provider never blocks snippet writes.
func (s *Snippet) index(ctx context.Context, sn snippet.Snippet) {
	if err := s.indexOne(ctx, sn); err != nil {
		s.logger.WarnContext(ctx, "failed to index snippet", "snippet_id", sn.ID(), "error", err)
	}
}

func (s *Snippet) indexOne(ctx context.Context, sn snippet.Snippet) error {
	text := search.BuildEmbeddingText(sn, s.budget)
	resp, err := s.embedder.Embed(ctx, provider.NewEmbeddingRequest([]string{text}))
	if err != nil {
		return err
	}
	return s.vectors.Replace(ctx, sn.ID(), s.model, sn.Language(), resp.Embeddings()[0])
}
