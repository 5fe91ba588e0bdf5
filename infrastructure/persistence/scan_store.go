package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/codevault/codevault/domain/analysis"
	"github.com/codevault/codevault/internal/database"
)

// ScanStore implements analysis.ScanStore using GORM.
type ScanStore struct {
	db     database.Database
	mapper ScanMapper
}

// NewScanStore creates a new ScanStore.
func NewScanStore(db database.Database) ScanStore {
	return ScanStore{db: db, mapper: ScanMapper{}}
}

// Add appends a scan record and returns it with its assigned ID.
func (s ScanStore) Add(ctx context.Context, scan analysis.Scan) (analysis.Scan, error) {
	model, err := s.mapper.ToModel(scan)
	if err != nil {
		return analysis.Scan{}, fmt.Errorf("serialize findings: %w", err)
	}
	model.ID = 0

	if err := s.db.Session(ctx).Create(&model).Error; err != nil {
		return analysis.Scan{}, err
	}
	return s.mapper.ToDomain(model), nil
}

// Latest returns the most recent scan for a snippet.
func (s ScanStore) Latest(ctx context.Context, snippetID int64) (analysis.Scan, error) {
	var model ScanModel
	err := s.db.Session(ctx).
		Where("snippet_id = ?", snippetID).
		Order("scan_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return analysis.Scan{}, fmt.Errorf("%w: scan for snippet %d", database.ErrNotFound, snippetID)
		}
		return analysis.Scan{}, err
	}
	return s.mapper.ToDomain(model), nil
}

var _ analysis.ScanStore = ScanStore{}
