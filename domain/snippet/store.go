package snippet

import "context"

// Store defines operations for snippet persistence.
type Store interface {
	// Get returns a snippet by ID.
	Get(ctx context.Context, id int64) (Snippet, error)

	// List returns all snippets, most recently created first.
	List(ctx context.Context) ([]Snippet, error)

	// Create persists a new snippet and returns it with its assigned ID.
	Create(ctx context.Context, s Snippet) (Snippet, error)

	// Update persists changes to an existing snippet.
	Update(ctx context.Context, s Snippet) (Snippet, error)

	// Delete removes a snippet and its dependent rows.
	Delete(ctx context.Context, id int64) error

	// Search performs lexical search over title, content, description and
	// tag string. Multi-word queries AND-combine terms longer than two
	// characters. An optional language narrows results.
	Search(ctx context.Context, query, language string, limit int) ([]Snippet, error)

	// ByTag returns snippets whose tag set contains the given tag.
	ByTag(ctx context.Context, tag string) ([]Snippet, error)

	// ByLanguage returns snippets in the given language.
	ByLanguage(ctx context.Context, language string) ([]Snippet, error)

	// IncrementViewCount advances the view counter by one.
	IncrementViewCount(ctx context.Context, id int64) error

	// IncrementUsageCount advances the usage counter by one.
	IncrementUsageCount(ctx context.Context, id int64) error
}

// MetricStore defines operations for performance metric persistence.
type MetricStore interface {
	// Add appends a metric and returns it with its assigned ID.
	Add(ctx context.Context, m Metric) (Metric, error)

	// BySnippet returns all metrics for a snippet, newest first.
	BySnippet(ctx context.Context, snippetID int64) ([]Metric, error)
}

// TagStore defines operations for tag persistence.
type TagStore interface {
	// Upsert records the use of each tag name, creating missing tags and
	// incrementing usage counts.
	Upsert(ctx context.Context, names []string) error

	// List returns all tags ordered by descending usage count.
	List(ctx context.Context) ([]Tag, error)
}
