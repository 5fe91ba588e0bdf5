package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/codevault/codevault/domain/analysis"
	"github.com/codevault/codevault/domain/snippet"
	"github.com/codevault/codevault/internal/database"
	"github.com/codevault/codevault/internal/log"
)

// Fallback texts returned when an analysis engine fails internally. The
// assistant embeds these in prompt context instead of surfacing an error.
const (
	complexityUnavailable   = "No complexity analysis available for this code snippet."
	complexityFailure       = "Error analyzing code complexity."
	optimizationUnavailable = "No optimization information available for this code snippet."
	optimizationFailure     = "Error retrieving optimization information."
	securityClean           = "No security issues detected in this code snippet."
	securityFailure         = "Error analyzing code security."
)

// Analysis provides static analysis over stored snippets: complexity,
// optimization hints, security scans and pairwise comparison.
type Analysis struct {
	snippets snippet.Store
	metrics  snippet.MetricStore
	scans    analysis.ScanStore
	logger   *log.Logger
}

// NewAnalysis creates a new Analysis service.
func NewAnalysis(
	snippets snippet.Store,
	metrics snippet.MetricStore,
	scans analysis.ScanStore,
	logger *log.Logger,
) *Analysis {
	return &Analysis{
		snippets: snippets,
		metrics:  metrics,
		scans:    scans,
		logger:   logger,
	}
}

// Complexity runs static complexity analysis over a snippet.
func (s *Analysis) Complexity(ctx context.Context, snippetID int64) (analysis.ComplexityReport, error) {
	sn, err := s.snippets.Get(ctx, snippetID)
	if err != nil {
		return analysis.ComplexityReport{}, err
	}
	return analysis.AnalyzeComplexity(sn.Content(), sn.Language()), nil
}

// ComplexityText renders complexity information for prompt context. Stored
// performance metrics take precedence over static analysis.
func (s *Analysis) ComplexityText(ctx context.Context, sn snippet.Snippet) string {
	metrics, err := s.metrics.BySnippet(ctx, sn.ID())
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load metrics", "snippet_id", sn.ID(), "error", err)
		return complexityFailure
	}

	var lines []string
	if len(metrics) > 0 {
		for _, m := range metrics {
			line := fmt.Sprintf("- %s: %s", m.Name(), m.Value())
			if m.Notes() != "" {
				line += fmt.Sprintf(" (%s)", m.Notes())
			}
			lines = append(lines, line)
		}
	} else {
		lines = analysis.AnalyzeComplexity(sn.Content(), sn.Language()).Lines()
	}

	if len(lines) == 0 {
		return complexityUnavailable
	}
	return strings.Join(lines, "\n")
}

// OptimizationText renders stored performance metrics and static
// optimization suggestions for prompt context.
func (s *Analysis) OptimizationText(ctx context.Context, sn snippet.Snippet) string {
	metrics, err := s.metrics.BySnippet(ctx, sn.ID())
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load metrics", "snippet_id", sn.ID(), "error", err)
		return optimizationFailure
	}

	var lines []string
	if len(metrics) > 0 {
		lines = append(lines, "Performance Metrics:")
		for _, m := range metrics {
			lines = append(lines, fmt.Sprintf("- %s: %s", m.Name(), m.Value()))
			if m.Notes() != "" {
				lines = append(lines, "  Note: "+m.Notes())
			}
		}
	}

	suggestions := analysis.OptimizationSuggestions(sn.Content(), sn.Language())
	if len(suggestions) > 0 {
		lines = append(lines, "\nOptimization Suggestions:")
		for _, suggestion := range suggestions {
			lines = append(lines, "- "+suggestion)
		}
	}

	if len(lines) == 0 {
		return optimizationUnavailable
	}
	return strings.Join(lines, "\n")
}

// SecurityText renders security scan results for prompt context, reusing
// the latest stored scan when one exists. A fresh scan with findings is
// persisted for later reuse.
func (s *Analysis) SecurityText(ctx context.Context, sn snippet.Snippet) string {
	latest, err := s.scans.Latest(ctx, sn.ID())
	if err == nil {
		return formatScan(latest)
	}
	if !errors.Is(err, database.ErrNotFound) {
		s.logger.WarnContext(ctx, "failed to load security scan", "snippet_id", sn.ID(), "error", err)
		return securityFailure
	}

	findings := analysis.AnalyzeSecurity(sn.Content(), sn.Language())
	if len(findings) == 0 {
		return securityClean
	}

	scan := analysis.NewScan(sn.ID(), findings)
	stored, err := s.scans.Add(ctx, scan)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to store security scan", "snippet_id", sn.ID(), "error", err)
		return formatScan(scan)
	}
	return formatScan(stored)
}

// Scan performs a fresh security scan and persists the result, regardless
// of any earlier scans.
func (s *Analysis) Scan(ctx context.Context, snippetID int64) (analysis.Scan, error) {
	sn, err := s.snippets.Get(ctx, snippetID)
	if err != nil {
		return analysis.Scan{}, err
	}

	findings := analysis.AnalyzeSecurity(sn.Content(), sn.Language())
	return s.scans.Add(ctx, analysis.NewScan(snippetID, findings))
}

// LatestScan returns the most recent stored scan, performing and persisting
// one when the snippet has never been scanned.
func (s *Analysis) LatestScan(ctx context.Context, snippetID int64) (analysis.Scan, error) {
	latest, err := s.scans.Latest(ctx, snippetID)
	if err == nil {
		return latest, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return analysis.Scan{}, err
	}
	return s.Scan(ctx, snippetID)
}

// Compare produces a markdown comparison report for two snippets.
func (s *Analysis) Compare(ctx context.Context, firstID, secondID int64) (string, error) {
	first, err := s.snippets.Get(ctx, firstID)
	if err != nil {
		return "", err
	}
	second, err := s.snippets.Get(ctx, secondID)
	if err != nil {
		return "", err
	}
	return analysis.Compare(first, second), nil
}

// formatScan renders a stored scan as a markdown report.
func formatScan(scan analysis.Scan) string {
	var sb strings.Builder

	sb.WriteString("## Security Scan Results\n\n")
	sb.WriteString("Scan Date: " + scan.ScanDate().Format("2006-01-02 15:04") + "\n")
	sb.WriteString("Scanner: " + scan.Scanner() + "\n")
	fmt.Fprintf(&sb, "Security Score: %d/100\n", scan.Score())

	sb.WriteString("\n### Issues Summary\n\n")
	fmt.Fprintf(&sb, "* Critical: %d\n", scan.CriticalCount())
	fmt.Fprintf(&sb, "* High: %d\n", scan.HighCount())
	fmt.Fprintf(&sb, "* Medium: %d\n", scan.MediumCount())
	fmt.Fprintf(&sb, "* Low: %d\n", scan.LowCount())

	findings := scan.Findings()
	if len(findings) == 0 {
		sb.WriteString("\nNo security issues were found in this code snippet.\n")
		return sb.String()
	}

	sb.WriteString("\n### Detailed Findings\n\n")
	for _, f := range findings {
		fmt.Fprintf(&sb, "#### %s: %s\n\n", f.Severity, f.Title)
		sb.WriteString(f.Description + "\n")

		if f.Excerpt != "" {
			sb.WriteString("\n```\n" + f.Excerpt + "\n```\n")
		}
		if f.Recommendation != "" {
			sb.WriteString("\n**Recommendation**: " + f.Recommendation + "\n")
		}
		if f.Reference != "" {
			sb.WriteString("\n**Reference**: " + f.Reference + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
