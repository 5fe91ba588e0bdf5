package dto

import "time"

// FindingData represents one security finding.
type FindingData struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Severity       string `json:"severity"`
	LineNumber     int    `json:"line_number"`
	Excerpt        string `json:"excerpt,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Reference      string `json:"reference,omitempty"`
}

// ScanData represents a security scan in API responses.
type ScanData struct {
	ID            int64         `json:"id"`
	SnippetID     int64         `json:"snippet_id"`
	ScanDate      time.Time     `json:"scan_date"`
	Scanner       string        `json:"scanner"`
	Score         int           `json:"score"`
	CriticalCount int           `json:"critical_count"`
	HighCount     int           `json:"high_count"`
	MediumCount   int           `json:"medium_count"`
	LowCount      int           `json:"low_count"`
	Findings      []FindingData `json:"findings"`
}

// ScanResponse wraps a security scan.
type ScanResponse struct {
	Data ScanData `json:"data"`
}

// ComplexityData represents a static complexity report.
type ComplexityData struct {
	Cyclomatic    int    `json:"cyclomatic"`
	Level         string `json:"level"`
	NestingDepth  int    `json:"nesting_depth"`
	FunctionCount int    `json:"function_count"`
	LineCount     int    `json:"line_count"`
}

// ComplexityResponse wraps a complexity report.
type ComplexityResponse struct {
	Data ComplexityData `json:"data"`
}

// CompareResponse carries a markdown comparison report.
type CompareResponse struct {
	Report string `json:"report"`
}
