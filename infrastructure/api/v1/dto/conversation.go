package dto

import "time"

// MessageData represents one chat message.
type MessageData struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Content        string    `json:"content"`
	IsFromUser     bool      `json:"is_from_user"`
	Timestamp      time.Time `json:"timestamp"`
}

// ConversationData represents a conversation in API responses.
type ConversationData struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Messages  []MessageData `json:"messages,omitempty"`
}

// ConversationListResponse wraps a list of conversations.
type ConversationListResponse struct {
	Data []ConversationData `json:"data"`
}

// ConversationResponse wraps a single conversation.
type ConversationResponse struct {
	Data ConversationData `json:"data"`
}

// StartConversationRequest opens a conversation with its first message.
type StartConversationRequest struct {
	Message string `json:"message"`
}

// SendMessageRequest appends a message to a conversation.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse wraps a single message.
type MessageResponse struct {
	Data MessageData `json:"data"`
}

// CompletionRequest is the payload for a one-shot completion.
type CompletionRequest struct {
	Prompt string `json:"prompt"`
}

// CompletionResponse carries the assistant's answer.
type CompletionResponse struct {
	Completion string `json:"completion"`
}
