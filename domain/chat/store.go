package chat

import "context"

// Store defines operations for conversation persistence.
type Store interface {
	// Get returns a conversation with its messages.
	Get(ctx context.Context, id int64) (Conversation, error)

	// List returns all active conversations, most recently updated first,
	// without their messages.
	List(ctx context.Context) ([]Conversation, error)

	// Create persists a new conversation and returns it with its ID.
	Create(ctx context.Context, c Conversation) (Conversation, error)

	// AddMessage appends a message and advances the conversation's update
	// timestamp.
	AddMessage(ctx context.Context, m Message) (Message, error)

	// Delete removes a conversation and its messages.
	Delete(ctx context.Context, id int64) error
}
