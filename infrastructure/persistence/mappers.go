package persistence

import (
	"encoding/json"

	"github.com/codevault/codevault/domain/analysis"
	"github.com/codevault/codevault/domain/chat"
	"github.com/codevault/codevault/domain/snippet"
)

// SnippetMapper maps between domain Snippet and SnippetModel.
type SnippetMapper struct{}

// ToDomain converts a SnippetModel to a domain Snippet.
func (m SnippetMapper) ToDomain(e SnippetModel) snippet.Snippet {
	return snippet.ReconstructSnippet(
		e.ID,
		e.Title, e.Content, e.Language, e.Description,
		snippet.ParseTags(e.TagString),
		e.CreatedAt, e.UpdatedAt,
		e.ViewCount, e.UsageCount,
		e.Rating, e.RatingCount,
	)
}

// ToModel converts a domain Snippet to a SnippetModel.
func (m SnippetMapper) ToModel(s snippet.Snippet) SnippetModel {
	return SnippetModel{
		ID:          s.ID(),
		Title:       s.Title(),
		Content:     s.Content(),
		Language:    s.Language(),
		Description: s.Description(),
		TagString:   s.TagString(),
		ViewCount:   s.ViewCount(),
		UsageCount:  s.UsageCount(),
		Rating:      s.Rating(),
		RatingCount: s.RatingCount(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

// TagMapper maps between domain Tag and TagModel.
type TagMapper struct{}

// ToDomain converts a TagModel to a domain Tag.
func (m TagMapper) ToDomain(e TagModel) snippet.Tag {
	return snippet.ReconstructTag(e.ID, e.Name, e.Description, e.UsageCount, e.CreatedAt)
}

// ToModel converts a domain Tag to a TagModel.
func (m TagMapper) ToModel(t snippet.Tag) TagModel {
	return TagModel{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		UsageCount:  t.UsageCount(),
		CreatedAt:   t.CreatedAt(),
	}
}

// MetricMapper maps between domain Metric and MetricModel.
type MetricMapper struct{}

// ToDomain converts a MetricModel to a domain Metric.
func (m MetricMapper) ToDomain(e MetricModel) snippet.Metric {
	return snippet.ReconstructMetric(
		e.ID, e.SnippetID,
		e.Name, e.Value,
		e.NumericValue,
		e.Unit, e.Environment, e.Notes,
		e.CreatedAt,
	)
}

// ToModel converts a domain Metric to a MetricModel.
func (m MetricMapper) ToModel(metric snippet.Metric) MetricModel {
	return MetricModel{
		ID:           metric.ID(),
		SnippetID:    metric.SnippetID(),
		Name:         metric.Name(),
		Value:        metric.Value(),
		NumericValue: metric.NumericValue(),
		Unit:         metric.Unit(),
		Environment:  metric.Environment(),
		Notes:        metric.Notes(),
		CreatedAt:    metric.CreatedAt(),
	}
}

// ScanMapper maps between domain Scan and ScanModel. Findings round-trip
// through JSON.
type ScanMapper struct{}

// ToDomain converts a ScanModel to a domain Scan. Corrupt findings JSON
// yields a scan with no findings rather than an error.
func (m ScanMapper) ToDomain(e ScanModel) analysis.Scan {
	var findings []analysis.Finding
	if e.FindingsJSON != "" {
		_ = json.Unmarshal([]byte(e.FindingsJSON), &findings)
	}

	return analysis.ReconstructScan(
		e.ID, e.SnippetID,
		e.ScanDate,
		e.Scanner,
		e.Score, e.CriticalCount, e.HighCount, e.MediumCount, e.LowCount,
		findings,
	)
}

// ToModel converts a domain Scan to a ScanModel.
func (m ScanMapper) ToModel(s analysis.Scan) (ScanModel, error) {
	findingsJSON, err := json.Marshal(s.Findings())
	if err != nil {
		return ScanModel{}, err
	}

	return ScanModel{
		ID:            s.ID(),
		SnippetID:     s.SnippetID(),
		ScanDate:      s.ScanDate(),
		Scanner:       s.Scanner(),
		Score:         s.Score(),
		CriticalCount: s.CriticalCount(),
		HighCount:     s.HighCount(),
		MediumCount:   s.MediumCount(),
		LowCount:      s.LowCount(),
		FindingsJSON:  string(findingsJSON),
	}, nil
}

// ConversationMapper maps between domain Conversation and ConversationModel.
type ConversationMapper struct{}

// ToDomain converts a ConversationModel plus its messages to a domain
// Conversation.
func (m ConversationMapper) ToDomain(e ConversationModel, messages []chat.Message) chat.Conversation {
	return chat.ReconstructConversation(e.ID, e.Title, e.CreatedAt, e.UpdatedAt, e.IsActive, messages)
}

// ToModel converts a domain Conversation to a ConversationModel.
func (m ConversationMapper) ToModel(c chat.Conversation) ConversationModel {
	return ConversationModel{
		ID:        c.ID(),
		Title:     c.Title(),
		IsActive:  c.Active(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// MessageMapper maps between domain Message and MessageModel.
type MessageMapper struct{}

// ToDomain converts a MessageModel to a domain Message.
func (m MessageMapper) ToDomain(e MessageModel) chat.Message {
	return chat.ReconstructMessage(e.ID, e.ConversationID, e.Content, e.FromUser, e.Timestamp)
}

// ToModel converts a domain Message to a MessageModel.
func (m MessageMapper) ToModel(msg chat.Message) MessageModel {
	return MessageModel{
		ID:             msg.ID(),
		ConversationID: msg.ConversationID(),
		Content:        msg.Content(),
		FromUser:       msg.FromUser(),
		Timestamp:      msg.Timestamp(),
	}
}
