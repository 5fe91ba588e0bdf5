package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/codevault/codevault/domain/snippet"
	"github.com/codevault/codevault/internal/database"
)

// TagStore implements snippet.TagStore using GORM.
type TagStore struct {
	db     database.Database
	mapper TagMapper
}

// NewTagStore creates a new TagStore.
func NewTagStore(db database.Database) TagStore {
	return TagStore{db: db, mapper: TagMapper{}}
}

// Upsert records the use of each tag name, creating missing tags with a
// usage count of one and incrementing existing ones.
func (s TagStore) Upsert(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		for _, name := range names {
			var model TagModel
			err := tx.Where("name = ?", name).First(&model).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				model = TagModel{Name: name, UsageCount: 1}
				if err := tx.Create(&model).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				if err := tx.Model(&TagModel{}).
					Where("id = ?", model.ID).
					UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// List returns all tags ordered by descending usage count.
func (s TagStore) List(ctx context.Context) ([]snippet.Tag, error) {
	var models []TagModel
	if err := s.db.Session(ctx).Order("usage_count DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	tags := make([]snippet.Tag, len(models))
	for i, model := range models {
		tags[i] = s.mapper.ToDomain(model)
	}
	return tags, nil
}

var _ snippet.TagStore = TagStore{}
