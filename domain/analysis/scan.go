// Package analysis provides static analysis engines for code snippets:
// complexity, optimization, security scanning and pairwise comparison.
// All engines are deterministic and absorb internal failures instead of
// propagating them.
package analysis

import (
	"time"
)

// Severity classifies a security finding.
type Severity string

// Severity levels, ordered from most to least severe.
const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// ScannerName identifies the built-in static scanner.
const ScannerName = "Basic Analysis"

// Finding is a single security issue located in snippet content.
type Finding struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	LineNumber     int      `json:"lineNumber"`
	Excerpt        string   `json:"excerpt"`
	Recommendation string   `json:"recommendation"`
	Reference      string   `json:"reference"`
}

// Scan is an append-only record of one security scan run.
type Scan struct {
	id        int64
	snippetID int64
	scanDate  time.Time
	scanner   string
	score     int
	critical  int
	high      int
	medium    int
	low       int
	findings  []Finding
}

// NewScan creates a Scan from a set of findings, deriving severity counts
// and the overall score.
func NewScan(snippetID int64, findings []Finding) Scan {
	var critical, high, medium, low int
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		case SeverityLow:
			low++
		}
	}

	copied := make([]Finding, len(findings))
	copy(copied, findings)

	return Scan{
		snippetID: snippetID,
		scanDate:  time.Now(),
		scanner:   ScannerName,
		score:     SecurityScore(critical, high, medium, low),
		critical:  critical,
		high:      high,
		medium:    medium,
		low:       low,
		findings:  copied,
	}
}

// ReconstructScan reconstructs a Scan from persistence.
func ReconstructScan(
	id, snippetID int64,
	scanDate time.Time,
	scanner string,
	score, critical, high, medium, low int,
	findings []Finding,
) Scan {
	copied := make([]Finding, len(findings))
	copy(copied, findings)

	return Scan{
		id:        id,
		snippetID: snippetID,
		scanDate:  scanDate,
		scanner:   scanner,
		score:     score,
		critical:  critical,
		high:      high,
		medium:    medium,
		low:       low,
		findings:  copied,
	}
}

// ID returns the scan identifier.
func (s Scan) ID() int64 { return s.id }

// SnippetID returns the scanned snippet identifier.
func (s Scan) SnippetID() int64 { return s.snippetID }

// ScanDate returns when the scan ran.
func (s Scan) ScanDate() time.Time { return s.scanDate }

// Scanner returns the scanner name.
func (s Scan) Scanner() string { return s.scanner }

// Score returns the overall security score in [0, 100].
func (s Scan) Score() int { return s.score }

// CriticalCount returns the number of critical findings.
func (s Scan) CriticalCount() int { return s.critical }

// HighCount returns the number of high findings.
func (s Scan) HighCount() int { return s.high }

// MediumCount returns the number of medium findings.
func (s Scan) MediumCount() int { return s.medium }

// LowCount returns the number of low findings.
func (s Scan) LowCount() int { return s.low }

// Findings returns a copy of the detailed findings.
func (s Scan) Findings() []Finding {
	result := make([]Finding, len(s.findings))
	copy(result, s.findings)
	return result
}

// SecurityScore computes the overall score: 100 minus weighted issue counts,
// clamped to [0, 100].
func SecurityScore(critical, high, medium, low int) int {
	score := 100 - critical*25 - high*15 - medium*8 - low*4
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
