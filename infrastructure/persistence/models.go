// Package persistence provides GORM-backed storage for snippets, tags,
// metrics, security scans, and conversations.
package persistence

import "time"

// SnippetModel is the GORM model for code snippets.
type SnippetModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"size:255;not null"`
	Content     string `gorm:"type:text;not null"`
	Language    string `gorm:"size:100;not null;index"`
	Description string `gorm:"type:text"`
	TagString   string `gorm:"size:1000"`
	ViewCount   int    `gorm:"not null;default:0"`
	UsageCount  int    `gorm:"not null;default:0"`
	Rating      float64
	RatingCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for SnippetModel.
func (SnippetModel) TableName() string { return "snippets" }

// TagModel is the GORM model for the tag catalog.
type TagModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:255;not null;uniqueIndex"`
	Description string `gorm:"size:1000"`
	UsageCount  int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

// TableName returns the table name for TagModel.
func (TagModel) TableName() string { return "code_tags" }

// MetricModel is the GORM model for performance metrics.
type MetricModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	SnippetID    int64  `gorm:"index;not null"`
	Name         string `gorm:"size:255;not null"`
	Value        string `gorm:"size:255"`
	NumericValue float64
	Unit         string `gorm:"size:100"`
	Environment  string `gorm:"size:255"`
	Notes        string `gorm:"type:text"`
	CreatedAt    time.Time
}

// TableName returns the table name for MetricModel.
func (MetricModel) TableName() string { return "performance_metrics" }

// ScanModel is the GORM model for security scans. Findings are stored as
// a JSON document.
type ScanModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	SnippetID     int64  `gorm:"index;not null"`
	ScanDate      time.Time
	Scanner       string `gorm:"size:255"`
	Score         int
	CriticalCount int
	HighCount     int
	MediumCount   int
	LowCount      int
	FindingsJSON  string `gorm:"type:text;column:findings_json"`
}

// TableName returns the table name for ScanModel.
func (ScanModel) TableName() string { return "security_scans" }

// ConversationModel is the GORM model for chat conversations.
type ConversationModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:255"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for ConversationModel.
func (ConversationModel) TableName() string { return "conversations" }

// MessageModel is the GORM model for chat messages.
type MessageModel struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	ConversationID int64  `gorm:"index;not null"`
	Content        string `gorm:"type:text;not null"`
	FromUser       bool   `gorm:"not null"`
	Timestamp      time.Time
}

// TableName returns the table name for MessageModel.
func (MessageModel) TableName() string { return "chat_messages" }
