// Package dto defines the request and response shapes of the v1 API.
package dto

import "time"

// SnippetData represents a snippet in API responses.
type SnippetData struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Language    string    `json:"language"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	ViewCount   int       `json:"view_count"`
	UsageCount  int       `json:"usage_count"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SnippetListResponse wraps a list of snippets.
type SnippetListResponse struct {
	Data []SnippetData `json:"data"`
}

// SnippetResponse wraps a single snippet.
type SnippetResponse struct {
	Data SnippetData `json:"data"`
}

// SnippetRequest is the create/update payload for a snippet.
type SnippetRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Language    string   `json:"language"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// RatingRequest is the payload for rating a snippet.
type RatingRequest struct {
	Value int `json:"value"`
}

// SearchRequest is the payload for semantic search.
type SearchRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// TagData represents a tag in API responses.
type TagData struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}

// TagListResponse wraps a list of tags.
type TagListResponse struct {
	Data []TagData `json:"data"`
}

// MetricData represents a performance metric in API responses.
type MetricData struct {
	ID           int64     `json:"id"`
	SnippetID    int64     `json:"snippet_id"`
	Name         string    `json:"name"`
	Value        string    `json:"value"`
	NumericValue float64   `json:"numeric_value"`
	Unit         string    `json:"unit,omitempty"`
	Environment  string    `json:"environment,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MetricListResponse wraps a list of metrics.
type MetricListResponse struct {
	Data []MetricData `json:"data"`
}

// MetricRequest is the payload for recording a metric.
type MetricRequest struct {
	Name         string  `json:"name"`
	Value        string  `json:"value"`
	NumericValue float64 `json:"numeric_value"`
	Unit         string  `json:"unit"`
	Environment  string  `json:"environment"`
	Notes        string  `json:"notes"`
}
