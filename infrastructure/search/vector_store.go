package search

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/codevault/codevault/internal/database"
	"github.com/codevault/codevault/internal/log"
)

// Float64Slice stores an embedding vector as a JSON array. Works on both
// SQLite and PostgreSQL text columns.
type Float64Slice []float64

// Value implements driver.Valuer.
func (f Float64Slice) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]float64(f))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (f *Float64Slice) Scan(value any) error {
	if value == nil {
		*f = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Float64Slice", value)
	}

	return json.Unmarshal(data, (*[]float64)(f))
}

type embeddingRecord struct {
	ID        int64        `gorm:"primaryKey;autoIncrement"`
	SnippetID int64        `gorm:"index;not null"`
	Model     string       `gorm:"size:255"`
	Language  string       `gorm:"size:100;index"`
	Vector    Float64Slice `gorm:"type:text"`
	CreatedAt time.Time
}

func (embeddingRecord) TableName() string { return "embeddings" }

// Migrate creates the embeddings table.
func Migrate(ctx context.Context, db database.Database) error {
	return db.Session(ctx).AutoMigrate(&embeddingRecord{})
}

// VectorStore persists snippet embeddings and answers nearest-neighbor
// queries by ranking all stored vectors in memory.
type VectorStore struct {
	db  database.Database
	log *log.Logger
}

// NewVectorStore creates a VectorStore.
func NewVectorStore(db database.Database, logger *log.Logger) *VectorStore {
	return &VectorStore{db: db, log: logger}
}

// Replace swaps the stored embedding for a snippet. The stale vector is
// deleted and the new one inserted inside one transaction so a lookup
// never sees both.
func (s *VectorStore) Replace(ctx context.Context, snippetID int64, model, language string, vector []float64) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("snippet_id = ?", snippetID).Delete(&embeddingRecord{}).Error; err != nil {
			return fmt.Errorf("delete stale embedding: %w", err)
		}

		record := embeddingRecord{
			SnippetID: snippetID,
			Model:     model,
			Language:  language,
			Vector:    Float64Slice(vector),
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("insert embedding: %w", err)
		}
		return nil
	})
}

// Delete removes the embedding for a snippet.
func (s *VectorStore) Delete(ctx context.Context, snippetID int64) error {
	return s.db.Session(ctx).
		Where("snippet_id = ?", snippetID).
		Delete(&embeddingRecord{}).Error
}

// Count returns the number of stored embeddings.
func (s *VectorStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.Session(ctx).Model(&embeddingRecord{}).Count(&count).Error
	return count, err
}

// Search returns the snippet IDs of the limit nearest stored vectors to
// the query, most similar first. A non-empty language restricts candidates
// to snippets in that language (case-insensitive). Vectors whose dimension
// differs from the query (typically after an embedding model change) are
// skipped with a warning.
func (s *VectorStore) Search(ctx context.Context, query []float64, limit int, language string) ([]Match, error) {
	session := s.db.Session(ctx)
	if language != "" {
		session = session.Where("LOWER(language) = LOWER(?)", language)
	}

	var records []embeddingRecord
	if err := session.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load embeddings: %w", err)
	}

	vectors := make([]StoredVector, 0, len(records))
	for _, r := range records {
		if len(r.Vector) != len(query) {
			s.log.WarnContext(ctx, "skipping embedding with mismatched dimension",
				"snippet_id", r.SnippetID,
				"stored_dim", len(r.Vector),
				"query_dim", len(query))
			continue
		}
		vectors = append(vectors, NewStoredVector(r.SnippetID, r.Vector))
	}

	return TopK(query, vectors, limit), nil
}
