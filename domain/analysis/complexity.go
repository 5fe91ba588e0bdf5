package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// languageFamily groups languages that share syntax shape for the pattern
// tables below.
type languageFamily int

const (
	familyCLike languageFamily = iota
	familyPython
	familyRuby
	familyGeneric
)

func familyOf(language string) languageFamily {
	switch strings.ToLower(language) {
	case "javascript", "typescript", "java", "c#", "c++", "php":
		return familyCLike
	case "python":
		return familyPython
	case "ruby":
		return familyRuby
	default:
		return familyGeneric
	}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	result := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		result[i] = regexp.MustCompile(p)
	}
	return result
}

// branchPatterns lists the decision-point patterns counted per language
// family. Each match adds one to the cyclomatic complexity.
var branchPatterns = map[languageFamily][]*regexp.Regexp{
	familyCLike: compileAll(
		`if\s*\(`,
		`else\s+if\s*\(`,
		`for\s*\(`,
		`while\s*\(`,
		`catch\s*\(`,
		`case\s+[^:]+:`,
		`\?\s*[^:]+\s*:`,
	),
	familyPython: compileAll(
		`\bif\s+`,
		`\belif\s+`,
		`\bfor\s+`,
		`\bwhile\s+`,
		`\bexcept\s+`,
	),
	familyRuby: compileAll(
		`\bif\s+`,
		`\belsif\s+`,
		`\bfor\s+`,
		`\bwhile\s+`,
		`\brescue\s+`,
		`\bcase\s+`,
	),
	familyGeneric: compileAll(
		`if\s*\(`,
		`for\s*\(`,
		`while\s*\(`,
	),
}

// functionPatterns lists function and method declaration shapes per
// language. Languages not listed fall back to functionPatternsDefault.
var functionPatterns = map[string][]*regexp.Regexp{
	"javascript": compileAll(
		`function\s+\w+\s*\(`,
		`\w+\s*=\s*function\s*\(`,
		`\w+\s*\([^)]*\)\s*=>`,
		`\w+\s*:\s*function\s*\(`,
	),
	"java": compileAll(
		`(?:public|private|protected|internal|static)?\s+\w+\s+\w+\s*\([^)]*\)\s*\{`,
	),
	"python": compileAll(`def\s+\w+\s*\(`),
	"ruby":   compileAll(`def\s+\w+`),
}

var functionPatternsDefault = compileAll(
	`function\s+\w+\s*\(`,
	`def\s+\w+`,
)

func init() {
	functionPatterns["typescript"] = functionPatterns["javascript"]
	functionPatterns["c#"] = functionPatterns["java"]
}

// Cyclomatic computes cyclomatic complexity: a base of 1 plus one per
// decision point. Returns -1 when analysis fails internally.
func Cyclomatic(code, language string) (complexity int) {
	defer func() {
		if recover() != nil {
			complexity = -1
		}
	}()

	complexity = 1
	for _, pattern := range branchPatterns[familyOf(language)] {
		complexity += len(pattern.FindAllStringIndex(code, -1))
	}
	return complexity
}

// ComplexityLevel interprets a cyclomatic complexity value.
func ComplexityLevel(complexity int) string {
	switch {
	case complexity <= 5:
		return "Low - Code is simple and easy to understand."
	case complexity <= 10:
		return "Moderate - Code has reasonable complexity."
	case complexity <= 20:
		return "High - Consider refactoring for better maintainability."
	default:
		return "Very High - Code is complex and may be difficult to maintain."
	}
}

// NestingDepth computes the maximum block nesting depth. Brace counting for
// brace languages; an indentation-keyword heuristic for Python. Returns -1
// when analysis fails internally.
func NestingDepth(code, language string) (depth int) {
	defer func() {
		if recover() != nil {
			depth = -1
		}
	}()

	maxDepth := 0
	currentDepth := 0
	python := familyOf(language) == familyPython

	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)

		if python {
			if strings.HasSuffix(trimmed, ":") &&
				(strings.HasPrefix(trimmed, "if ") ||
					strings.HasPrefix(trimmed, "for ") ||
					strings.HasPrefix(trimmed, "while ") ||
					strings.HasPrefix(trimmed, "def ") ||
					strings.HasPrefix(trimmed, "class ")) {
				currentDepth++
			} else if strings.HasPrefix(trimmed, "return") || trimmed == "break" || trimmed == "continue" {
				if currentDepth > 0 {
					currentDepth--
				}
			}
		} else {
			currentDepth += strings.Count(trimmed, "{")
			currentDepth -= strings.Count(trimmed, "}")
			if currentDepth < 0 {
				currentDepth = 0
			}
		}

		if currentDepth > maxDepth {
			maxDepth = currentDepth
		}
	}
	return maxDepth
}

// CountFunctions counts function and method declarations. Returns -1 when
// analysis fails internally.
func CountFunctions(code, language string) (count int) {
	defer func() {
		if recover() != nil {
			count = -1
		}
	}()

	patterns, ok := functionPatterns[strings.ToLower(language)]
	if !ok {
		patterns = functionPatternsDefault
	}
	for _, pattern := range patterns {
		count += len(pattern.FindAllStringIndex(code, -1))
	}
	return count
}

// CountLines counts the lines in code; an empty string has one line, like
// the analysis engines treat it.
func CountLines(code string) int {
	return strings.Count(code, "\n") + 1
}

// ComplexityReport summarizes static complexity analysis for one snippet.
type ComplexityReport struct {
	Cyclomatic    int
	NestingDepth  int
	FunctionCount int
	LineCount     int
}

// AnalyzeComplexity runs all complexity measurements over snippet content.
func AnalyzeComplexity(code, language string) ComplexityReport {
	return ComplexityReport{
		Cyclomatic:    Cyclomatic(code, language),
		NestingDepth:  NestingDepth(code, language),
		FunctionCount: CountFunctions(code, language),
		LineCount:     CountLines(code),
	}
}

// Lines renders the report as context lines for prompt assembly.
func (r ComplexityReport) Lines() []string {
	var lines []string

	if r.Cyclomatic > 0 {
		lines = append(lines, fmt.Sprintf("Cyclomatic Complexity: %d", r.Cyclomatic))
		lines = append(lines, "Complexity Level: "+ComplexityLevel(r.Cyclomatic))
	}
	if r.NestingDepth > 0 {
		lines = append(lines, fmt.Sprintf("Maximum Nesting Depth: %d", r.NestingDepth))
		if r.NestingDepth > 3 {
			lines = append(lines, "Note: Deep nesting can reduce code readability.")
		}
	}
	if r.FunctionCount > 0 {
		lines = append(lines, fmt.Sprintf("Function/Method Count: %d", r.FunctionCount))
	}

	lines = append(lines, fmt.Sprintf("Line Count: %d", r.LineCount))
	if r.LineCount > 300 {
		lines = append(lines, "Note: Large file size may indicate a need to split functionality.")
	}
	return lines
}
