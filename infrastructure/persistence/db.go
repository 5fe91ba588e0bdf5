package persistence

import (
	"context"

	"github.com/codevault/codevault/internal/database"
)

// AutoMigrate runs GORM auto migration for all persistence models.
func AutoMigrate(ctx context.Context, db database.Database) error {
	return db.Session(ctx).AutoMigrate(
		&SnippetModel{},
		&TagModel{},
		&MetricModel{},
		&ScanModel{},
		&ConversationModel{},
		&MessageModel{},
	)
}
