// Package chat provides conversation and message domain types.
package chat

import (
	"strings"
	"time"
	"unicode/utf8"
)

// maxTitleLength caps auto-generated conversation titles.
const maxTitleLength = 30

// Message is a single utterance in a conversation.
type Message struct {
	id             int64
	conversationID int64
	content        string
	fromUser       bool
	timestamp      time.Time
}

// NewMessage creates a Message for a conversation.
func NewMessage(conversationID int64, content string, fromUser bool) Message {
	return Message{
		conversationID: conversationID,
		content:        content,
		fromUser:       fromUser,
		timestamp:      time.Now(),
	}
}

// ReconstructMessage reconstructs a Message from persistence.
func ReconstructMessage(id, conversationID int64, content string, fromUser bool, timestamp time.Time) Message {
	return Message{
		id:             id,
		conversationID: conversationID,
		content:        content,
		fromUser:       fromUser,
		timestamp:      timestamp,
	}
}

// ID returns the message identifier.
func (m Message) ID() int64 { return m.id }

// ConversationID returns the owning conversation identifier.
func (m Message) ConversationID() int64 { return m.conversationID }

// Content returns the message text.
func (m Message) Content() string { return m.content }

// FromUser reports whether the message came from the user rather than the
// assistant.
func (m Message) FromUser() bool { return m.fromUser }

// Timestamp returns when the message was recorded.
func (m Message) Timestamp() time.Time { return m.timestamp }

// Conversation is an ordered exchange of messages with an auto-generated
// title.
type Conversation struct {
	id        int64
	title     string
	createdAt time.Time
	updatedAt time.Time
	active    bool
	messages  []Message
}

// NewConversation creates a Conversation titled from its initial message.
func NewConversation(initialMessage string) Conversation {
	now := time.Now()
	return Conversation{
		title:     GenerateTitle(initialMessage),
		createdAt: now,
		updatedAt: now,
		active:    true,
		messages:  []Message{},
	}
}

// ReconstructConversation reconstructs a Conversation from persistence.
func ReconstructConversation(id int64, title string, createdAt, updatedAt time.Time, active bool, messages []Message) Conversation {
	copied := make([]Message, len(messages))
	copy(copied, messages)

	return Conversation{
		id:        id,
		title:     title,
		createdAt: createdAt,
		updatedAt: updatedAt,
		active:    active,
		messages:  copied,
	}
}

// ID returns the conversation identifier.
func (c Conversation) ID() int64 { return c.id }

// Title returns the conversation title.
func (c Conversation) Title() string { return c.title }

// CreatedAt returns the creation timestamp.
func (c Conversation) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the timestamp of the last appended message.
func (c Conversation) UpdatedAt() time.Time { return c.updatedAt }

// Active reports whether the conversation is active.
func (c Conversation) Active() bool { return c.active }

// Messages returns the messages in insertion order.
func (c Conversation) Messages() []Message {
	result := make([]Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// WithID returns a copy carrying the persisted identifier.
func (c Conversation) WithID(id int64) Conversation {
	c.id = id
	return c
}

// WithMessage returns a copy with the message appended and the update
// timestamp advanced.
func (c Conversation) WithMessage(m Message) Conversation {
	messages := make([]Message, len(c.messages), len(c.messages)+1)
	copy(messages, c.messages)
	c.messages = append(messages, m)
	c.updatedAt = time.Now()
	return c
}

// GenerateTitle derives a conversation title from the initial message: the
// text up to the first period or 30 characters, whichever comes first, with
// an ellipsis when truncated. Truncation counts runes so a multibyte
// character is never split.
func GenerateTitle(initialMessage string) string {
	runes := []rune(initialMessage)

	endIndex := len(runes)
	if endIndex > maxTitleLength {
		endIndex = maxTitleLength
	}

	if byteIndex := strings.Index(initialMessage, "."); byteIndex > 0 {
		if periodIndex := utf8.RuneCountInString(initialMessage[:byteIndex]); periodIndex < endIndex {
			endIndex = periodIndex
		}
	}

	title := strings.TrimSpace(string(runes[:endIndex]))
	if endIndex < len(runes) && !strings.HasSuffix(title, "...") {
		title += "..."
	}
	return title
}
