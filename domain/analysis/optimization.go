package analysis

import (
	"regexp"
	"strings"
)

// optimizationRule triggers a suggestion when every allOf pattern matches
// and, when anyOf is non-empty, at least one of those matches too.
type optimizationRule struct {
	languages  []string
	allOf      []*regexp.Regexp
	anyOf      []*regexp.Regexp
	suggestion string
}

var optimizationRules = []optimizationRule{
	{
		languages:  []string{"javascript", "typescript"},
		allOf:      compileAll(`for\s*\(\s*var\s+i`),
		suggestion: "Consider using 'let' instead of 'var' for better scoping.",
	},
	{
		languages:  []string{"javascript", "typescript"},
		allOf:      compileAll(`for\s*\(.*\.length`),
		suggestion: "Array methods like map(), filter(), reduce() may be more readable than for loops.",
	},
	{
		languages:  []string{"javascript", "typescript"},
		allOf:      compileAll(`console\.log\(`),
		suggestion: "Remove console.log statements for production code.",
	},
	{
		languages:  []string{"python"},
		allOf:      compileAll(`\[\s*for\s+`, `\.append\(`),
		suggestion: "Consider list comprehensions instead of building lists with append().",
	},
	{
		languages:  []string{"python"},
		allOf:      compileAll(`".*?"\s*\+\s*"`),
		suggestion: "Use f-strings or .format() instead of string concatenation.",
	},
	{
		languages:  []string{"python"},
		allOf:      compileAll(`\bprint\(`),
		suggestion: "Remove print statements for production code.",
	},
	{
		languages:  []string{"c#"},
		allOf:      compileAll(`".*?"\s*\+\s*"`),
		suggestion: "Consider using string interpolation ($\"\") or StringBuilder for string concatenation.",
	},
	{
		languages:  []string{"c#"},
		anyOf:      compileAll(`for\s*\(.*\.Length`, `foreach\s*\(`),
		suggestion: "LINQ methods might provide more concise solutions than loops.",
	},
}

func (r optimizationRule) appliesTo(language string) bool {
	for _, l := range r.languages {
		if l == language {
			return true
		}
	}
	return len(r.languages) == 0
}

func (r optimizationRule) matches(code string) bool {
	for _, p := range r.allOf {
		if !p.MatchString(code) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return len(r.allOf) > 0
	}
	for _, p := range r.anyOf {
		if p.MatchString(code) {
			return true
		}
	}
	return false
}

// Thresholds for generic optimization suggestions.
const (
	deepNestingThreshold    = 3
	highComplexityThreshold = 15
	largeFileThreshold      = 200
)

// OptimizationSuggestions returns suggestions triggered by the rule table
// plus generic structural suggestions.
func OptimizationSuggestions(code, language string) []string {
	var suggestions []string

	lang := strings.ToLower(language)
	for _, rule := range optimizationRules {
		if rule.appliesTo(lang) && rule.matches(code) {
			suggestions = append(suggestions, rule.suggestion)
		}
	}

	if NestingDepth(code, language) > deepNestingThreshold {
		suggestions = append(suggestions, "High nesting depth detected. Consider refactoring to reduce complexity.")
	}
	if Cyclomatic(code, language) > highComplexityThreshold {
		suggestions = append(suggestions, "High cyclomatic complexity detected. Consider breaking down into smaller functions.")
	}
	if CountLines(code) > largeFileThreshold {
		suggestions = append(suggestions, "File is quite large. Consider splitting into smaller modules.")
	}

	return suggestions
}
