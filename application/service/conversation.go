package service

import (
	"context"

	"github.com/codevault/codevault/domain/chat"
	"github.com/codevault/codevault/internal/log"
)

// Conversation manages chat sessions and routes user messages through the
// assistant.
type Conversation struct {
	conversations chat.Store
	assistant     *Assistant
	logger        *log.Logger
}

// NewConversation creates a new Conversation service.
func NewConversation(conversations chat.Store, assistant *Assistant, logger *log.Logger) *Conversation {
	return &Conversation{
		conversations: conversations,
		assistant:     assistant,
		logger:        logger,
	}
}

// List returns all active conversations, most recently updated first.
func (s *Conversation) List(ctx context.Context) ([]chat.Conversation, error) {
	return s.conversations.List(ctx)
}

// Get returns a conversation with its messages in chronological order.
func (s *Conversation) Get(ctx context.Context, id int64) (chat.Conversation, error) {
	return s.conversations.Get(ctx, id)
}

// Start opens a conversation titled from the initial message, stores that
// message, answers it and stores the reply.
func (s *Conversation) Start(ctx context.Context, initialMessage string) (chat.Conversation, error) {
	created, err := s.conversations.Create(ctx,
		chat.NewConversation(initialMessage).WithMessage(chat.NewMessage(0, initialMessage, true)))
	if err != nil {
		return chat.Conversation{}, err
	}

	reply := s.assistant.Complete(ctx, initialMessage)
	stored, err := s.conversations.AddMessage(ctx, chat.NewMessage(created.ID(), reply, false))
	if err != nil {
		return chat.Conversation{}, err
	}
	return created.WithMessage(stored), nil
}

// Send appends a user message to a conversation, answers it and returns the
// stored reply.
func (s *Conversation) Send(ctx context.Context, conversationID int64, content string) (chat.Message, error) {
	if _, err := s.conversations.AddMessage(ctx, chat.NewMessage(conversationID, content, true)); err != nil {
		return chat.Message{}, err
	}

	reply := s.assistant.Complete(ctx, content)
	return s.conversations.AddMessage(ctx, chat.NewMessage(conversationID, reply, false))
}

// Delete removes a conversation and its messages.
func (s *Conversation) Delete(ctx context.Context, id int64) error {
	return s.conversations.Delete(ctx, id)
}
