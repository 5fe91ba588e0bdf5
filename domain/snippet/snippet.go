// Package snippet provides the code snippet aggregate and its related
// value objects.
package snippet

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation indicates invalid snippet input.
var ErrValidation = errors.New("validation failed")

// MinRating and MaxRating bound user-submitted ratings.
const (
	MinRating = 1
	MaxRating = 5
)

// Snippet represents a stored code snippet with usage metadata.
type Snippet struct {
	id          int64
	title       string
	content     string
	language    string
	description string
	tags        []string
	createdAt   time.Time
	updatedAt   time.Time
	viewCount   int
	usageCount  int
	rating      float64
	ratingCount int
}

// NewSnippet creates a new Snippet. Title, content and language are required.
// Tags are deduplicated case-insensitively, preserving first spelling.
func NewSnippet(title, content, language, description string, tags []string) (Snippet, error) {
	if title == "" {
		return Snippet{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if content == "" {
		return Snippet{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if language == "" {
		return Snippet{}, fmt.Errorf("%w: language is required", ErrValidation)
	}

	now := time.Now()
	return Snippet{
		title:       title,
		content:     content,
		language:    language,
		description: description,
		tags:        NormalizeTags(tags),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructSnippet reconstructs a Snippet from persistence.
func ReconstructSnippet(
	id int64,
	title, content, language, description string,
	tags []string,
	createdAt, updatedAt time.Time,
	viewCount, usageCount int,
	rating float64,
	ratingCount int,
) Snippet {
	copied := make([]string, len(tags))
	copy(copied, tags)

	return Snippet{
		id:          id,
		title:       title,
		content:     content,
		language:    language,
		description: description,
		tags:        copied,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		viewCount:   viewCount,
		usageCount:  usageCount,
		rating:      rating,
		ratingCount: ratingCount,
	}
}

// ID returns the snippet identifier.
func (s Snippet) ID() int64 { return s.id }

// Title returns the snippet title.
func (s Snippet) Title() string { return s.title }

// Content returns the snippet code content.
func (s Snippet) Content() string { return s.content }

// Language returns the programming language.
func (s Snippet) Language() string { return s.language }

// Description returns the snippet description.
func (s Snippet) Description() string { return s.description }

// Tags returns a copy of the tag set.
func (s Snippet) Tags() []string {
	result := make([]string, len(s.tags))
	copy(result, s.tags)
	return result
}

// TagString returns the tags joined for storage and search.
func (s Snippet) TagString() string { return JoinTags(s.tags) }

// CreatedAt returns the creation timestamp.
func (s Snippet) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last update timestamp.
func (s Snippet) UpdatedAt() time.Time { return s.updatedAt }

// ViewCount returns how many times the snippet was used in an answer.
func (s Snippet) ViewCount() int { return s.viewCount }

// UsageCount returns the explicit usage counter.
func (s Snippet) UsageCount() int { return s.usageCount }

// Rating returns the mean rating, 0 when unrated.
func (s Snippet) Rating() float64 { return s.rating }

// RatingCount returns how many ratings were submitted.
func (s Snippet) RatingCount() int { return s.ratingCount }

// WithID returns a copy carrying the persisted identifier.
func (s Snippet) WithID(id int64) Snippet {
	s.id = id
	return s
}

// WithDetails returns a copy with updated fields and a fresh update
// timestamp. Empty title, content or language are rejected.
func (s Snippet) WithDetails(title, content, language, description string, tags []string) (Snippet, error) {
	if title == "" {
		return Snippet{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if content == "" {
		return Snippet{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if language == "" {
		return Snippet{}, fmt.Errorf("%w: language is required", ErrValidation)
	}

	s.title = title
	s.content = content
	s.language = language
	s.description = description
	s.tags = NormalizeTags(tags)
	s.updatedAt = time.Now()
	return s, nil
}

// WithRating folds a new rating value into the running mean. Values outside
// [MinRating, MaxRating] are rejected and the snippet is unchanged.
func (s Snippet) WithRating(value int) (Snippet, error) {
	if value < MinRating || value > MaxRating {
		return s, fmt.Errorf("%w: rating must be between %d and %d", ErrValidation, MinRating, MaxRating)
	}

	total := s.rating*float64(s.ratingCount) + float64(value)
	s.ratingCount++
	s.rating = total / float64(s.ratingCount)
	return s, nil
}

// WithViewIncrement returns a copy with the view counter advanced.
func (s Snippet) WithViewIncrement() Snippet {
	s.viewCount++
	return s
}

// WithUsageIncrement returns a copy with the usage counter advanced.
func (s Snippet) WithUsageIncrement() Snippet {
	s.usageCount++
	return s
}
