package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/codevault/codevault/domain/chat"
	"github.com/codevault/codevault/internal/database"
)

// ConversationStore implements chat.Store using GORM.
type ConversationStore struct {
	db       database.Database
	convs    ConversationMapper
	messages MessageMapper
}

// NewConversationStore creates a new ConversationStore.
func NewConversationStore(db database.Database) ConversationStore {
	return ConversationStore{db: db}
}

// Get returns a conversation with its messages, oldest message first.
func (s ConversationStore) Get(ctx context.Context, id int64) (chat.Conversation, error) {
	var model ConversationModel
	err := s.db.Session(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Conversation{}, fmt.Errorf("%w: conversation %d", database.ErrNotFound, id)
		}
		return chat.Conversation{}, err
	}

	var messageModels []MessageModel
	err = s.db.Session(ctx).
		Where("conversation_id = ?", id).
		Order("timestamp ASC").
		Find(&messageModels).Error
	if err != nil {
		return chat.Conversation{}, err
	}

	messages := make([]chat.Message, len(messageModels))
	for i, m := range messageModels {
		messages[i] = s.messages.ToDomain(m)
	}

	return s.convs.ToDomain(model, messages), nil
}

// List returns all active conversations, most recently updated first,
// without their messages.
func (s ConversationStore) List(ctx context.Context) ([]chat.Conversation, error) {
	var models []ConversationModel
	err := s.db.Session(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	conversations := make([]chat.Conversation, len(models))
	for i, model := range models {
		conversations[i] = s.convs.ToDomain(model, nil)
	}
	return conversations, nil
}

// Create persists a new conversation and its initial messages.
func (s ConversationStore) Create(ctx context.Context, c chat.Conversation) (chat.Conversation, error) {
	model := s.convs.ToModel(c)
	model.ID = 0

	created, err := database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) (ConversationModel, error) {
		if err := tx.Create(&model).Error; err != nil {
			return ConversationModel{}, err
		}
		for _, msg := range c.Messages() {
			msgModel := s.messages.ToModel(msg)
			msgModel.ID = 0
			msgModel.ConversationID = model.ID
			if err := tx.Create(&msgModel).Error; err != nil {
				return ConversationModel{}, err
			}
		}
		return model, nil
	})
	if err != nil {
		return chat.Conversation{}, err
	}

	return s.Get(ctx, created.ID)
}

// AddMessage appends a message and advances the conversation's update
// timestamp.
func (s ConversationStore) AddMessage(ctx context.Context, m chat.Message) (chat.Message, error) {
	model := s.messages.ToModel(m)
	model.ID = 0

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var conv ConversationModel
		if err := tx.First(&conv, model.ConversationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: conversation %d", database.ErrNotFound, model.ConversationID)
			}
			return err
		}

		if err := tx.Create(&model).Error; err != nil {
			return err
		}

		return tx.Model(&ConversationModel{}).
			Where("id = ?", model.ConversationID).
			UpdateColumn("updated_at", time.Now().UTC()).Error
	})
	if err != nil {
		return chat.Message{}, err
	}

	return s.messages.ToDomain(model), nil
}

// Delete removes a conversation and its messages.
func (s ConversationStore) Delete(ctx context.Context, id int64) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&MessageModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&ConversationModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: conversation %d", database.ErrNotFound, id)
		}
		return nil
	})
}

var _ chat.Store = ConversationStore{}
