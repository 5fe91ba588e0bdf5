package persistence

import (
	"context"

	"github.com/codevault/codevault/domain/snippet"
	"github.com/codevault/codevault/internal/database"
)

// MetricStore implements snippet.MetricStore using GORM.
type MetricStore struct {
	db     database.Database
	mapper MetricMapper
}

// NewMetricStore creates a new MetricStore.
func NewMetricStore(db database.Database) MetricStore {
	return MetricStore{db: db, mapper: MetricMapper{}}
}

// Add appends a metric and returns it with its assigned ID.
func (s MetricStore) Add(ctx context.Context, m snippet.Metric) (snippet.Metric, error) {
	model := s.mapper.ToModel(m)
	model.ID = 0
	if err := s.db.Session(ctx).Create(&model).Error; err != nil {
		return snippet.Metric{}, err
	}
	return s.mapper.ToDomain(model), nil
}

// BySnippet returns all metrics for a snippet, newest first.
func (s MetricStore) BySnippet(ctx context.Context, snippetID int64) ([]snippet.Metric, error) {
	var models []MetricModel
	err := s.db.Session(ctx).
		Where("snippet_id = ?", snippetID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	metrics := make([]snippet.Metric, len(models))
	for i, model := range models {
		metrics[i] = s.mapper.ToDomain(model)
	}
	return metrics, nil
}

var _ snippet.MetricStore = MetricStore{}
