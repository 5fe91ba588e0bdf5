package snippet

import "time"

// Tag is a named label with a usage counter, maintained as snippets are
// created and updated.
type Tag struct {
	id          int64
	name        string
	description string
	usageCount  int
	createdAt   time.Time
}

// NewTag creates a Tag.
func NewTag(name string) Tag {
	return Tag{
		name:      name,
		createdAt: time.Now(),
	}
}

// ReconstructTag reconstructs a Tag from persistence.
func ReconstructTag(id int64, name, description string, usageCount int, createdAt time.Time) Tag {
	return Tag{
		id:          id,
		name:        name,
		description: description,
		usageCount:  usageCount,
		createdAt:   createdAt,
	}
}

// ID returns the tag identifier.
func (t Tag) ID() int64 { return t.id }

// Name returns the tag name.
func (t Tag) Name() string { return t.name }

// Description returns the tag description.
func (t Tag) Description() string { return t.description }

// UsageCount returns how many snippets reference the tag.
func (t Tag) UsageCount() int { return t.usageCount }

// CreatedAt returns the creation timestamp.
func (t Tag) CreatedAt() time.Time { return t.createdAt }
