package snippet

import "time"

// Metric is an append-only performance measurement attached to a snippet,
// such as "Time Complexity: O(n)" or "Execution Time: 250ms".
type Metric struct {
	id           int64
	snippetID    int64
	name         string
	value        string
	numericValue float64
	unit         string
	environment  string
	notes        string
	createdAt    time.Time
}

// NewMetric creates a Metric for a snippet.
func NewMetric(snippetID int64, name, value string, numericValue float64, unit, environment, notes string) Metric {
	return Metric{
		snippetID:    snippetID,
		name:         name,
		value:        value,
		numericValue: numericValue,
		unit:         unit,
		environment:  environment,
		notes:        notes,
		createdAt:    time.Now(),
	}
}

// ReconstructMetric reconstructs a Metric from persistence.
func ReconstructMetric(
	id, snippetID int64,
	name, value string,
	numericValue float64,
	unit, environment, notes string,
	createdAt time.Time,
) Metric {
	return Metric{
		id:           id,
		snippetID:    snippetID,
		name:         name,
		value:        value,
		numericValue: numericValue,
		unit:         unit,
		environment:  environment,
		notes:        notes,
		createdAt:    createdAt,
	}
}

// ID returns the metric identifier.
func (m Metric) ID() int64 { return m.id }

// SnippetID returns the owning snippet identifier.
func (m Metric) SnippetID() int64 { return m.snippetID }

// Name returns the metric name.
func (m Metric) Name() string { return m.name }

// Value returns the display value.
func (m Metric) Value() string { return m.value }

// NumericValue returns the numeric value, 0 when not applicable.
func (m Metric) NumericValue() float64 { return m.numericValue }

// Unit returns the measurement unit.
func (m Metric) Unit() string { return m.unit }

// Environment returns the runtime environment the metric was captured in.
func (m Metric) Environment() string { return m.environment }

// Notes returns free-form notes.
func (m Metric) Notes() string { return m.notes }

// CreatedAt returns the capture timestamp.
func (m Metric) CreatedAt() time.Time { return m.createdAt }
