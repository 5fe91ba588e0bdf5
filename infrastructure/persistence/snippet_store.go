package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/codevault/codevault/domain/snippet"
	"github.com/codevault/codevault/internal/database"
)

// SnippetStore implements snippet.Store using GORM.
type SnippetStore struct {
	db     database.Database
	mapper SnippetMapper
}

// NewSnippetStore creates a new SnippetStore.
func NewSnippetStore(db database.Database) SnippetStore {
	return SnippetStore{db: db, mapper: SnippetMapper{}}
}

// Get returns a snippet by ID.
func (s SnippetStore) Get(ctx context.Context, id int64) (snippet.Snippet, error) {
	var model SnippetModel
	err := s.db.Session(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snippet.Snippet{}, fmt.Errorf("%w: snippet %d", database.ErrNotFound, id)
		}
		return snippet.Snippet{}, err
	}
	return s.mapper.ToDomain(model), nil
}

// List returns all snippets, most recently created first.
func (s SnippetStore) List(ctx context.Context) ([]snippet.Snippet, error) {
	var models []SnippetModel
	if err := s.db.Session(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return s.toDomainSlice(models), nil
}

// Create persists a new snippet and returns it with its assigned ID.
func (s SnippetStore) Create(ctx context.Context, sn snippet.Snippet) (snippet.Snippet, error) {
	model := s.mapper.ToModel(sn)
	model.ID = 0
	if err := s.db.Session(ctx).Create(&model).Error; err != nil {
		return snippet.Snippet{}, err
	}
	return s.mapper.ToDomain(model), nil
}

// Update persists changes to an existing snippet.
func (s SnippetStore) Update(ctx context.Context, sn snippet.Snippet) (snippet.Snippet, error) {
	model := s.mapper.ToModel(sn)
	result := s.db.Session(ctx).Model(&SnippetModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return snippet.Snippet{}, result.Error
	}
	if result.RowsAffected == 0 {
		return snippet.Snippet{}, fmt.Errorf("%w: snippet %d", database.ErrNotFound, model.ID)
	}
	return sn, nil
}

// Delete removes a snippet and its dependent rows.
func (s SnippetStore) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("snippet_id = ?", id).Delete(&MetricModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("snippet_id = ?", id).Delete(&ScanModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&SnippetModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: snippet %d", database.ErrNotFound, id)
		}
		return nil
	})
}

// Search performs lexical search over title, content, description and tag
// string. Terms longer than two characters AND-combine; shorter queries
// match as a whole.
func (s SnippetStore) Search(ctx context.Context, query, language string, limit int) ([]snippet.Snippet, error) {
	session := s.db.Session(ctx).Model(&SnippetModel{})

	terms := searchTerms(query)
	if len(terms) == 0 && strings.TrimSpace(query) != "" {
		terms = []string{strings.TrimSpace(query)}
	}
	for _, term := range terms {
		pattern := "%" + term + "%"
		session = session.Where(
			"title LIKE ? OR content LIKE ? OR description LIKE ? OR tag_string LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	if language != "" {
		session = session.Where("language = ?", language)
	}
	if limit > 0 {
		session = session.Limit(limit)
	}

	var models []SnippetModel
	if err := session.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return s.toDomainSlice(models), nil
}

// searchTerms splits a query into terms worth matching individually.
func searchTerms(query string) []string {
	var terms []string
	for _, word := range strings.Fields(query) {
		if len(word) > 2 {
			terms = append(terms, word)
		}
	}
	return terms
}

// ByTag returns snippets whose tag set contains the given tag.
func (s SnippetStore) ByTag(ctx context.Context, tag string) ([]snippet.Snippet, error) {
	var models []SnippetModel
	err := s.db.Session(ctx).
		Where("tag_string LIKE ?", "%"+tag+"%").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	// The LIKE match is a coarse filter; confirm against the parsed tags
	// so "go" does not match "golang".
	var out []snippet.Snippet
	for _, model := range models {
		sn := s.mapper.ToDomain(model)
		for _, t := range sn.Tags() {
			if strings.EqualFold(t, tag) {
				out = append(out, sn)
				break
			}
		}
	}
	return out, nil
}

// ByLanguage returns snippets in the given language.
func (s SnippetStore) ByLanguage(ctx context.Context, language string) ([]snippet.Snippet, error) {
	var models []SnippetModel
	err := s.db.Session(ctx).
		Where("language = ?", language).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return s.toDomainSlice(models), nil
}

// IncrementViewCount advances the view counter by one.
func (s SnippetStore) IncrementViewCount(ctx context.Context, id int64) error {
	return s.incrementCounter(ctx, id, "view_count")
}

// IncrementUsageCount advances the usage counter by one.
func (s SnippetStore) IncrementUsageCount(ctx context.Context, id int64) error {
	return s.incrementCounter(ctx, id, "usage_count")
}

func (s SnippetStore) incrementCounter(ctx context.Context, id int64, column string) error {
	result := s.db.Session(ctx).Model(&SnippetModel{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: snippet %d", database.ErrNotFound, id)
	}
	return nil
}

func (s SnippetStore) toDomainSlice(models []SnippetModel) []snippet.Snippet {
	snippets := make([]snippet.Snippet, len(models))
	for i, model := range models {
		snippets[i] = s.mapper.ToDomain(model)
	}
	return snippets
}

var _ snippet.Store = SnippetStore{}
