package assistant

import (
	"fmt"
	"strings"

	"github.com/codevault/codevault/domain/snippet"
)

// ContextBuilder accumulates retrieved snippets and analysis sections into
// the context block prepended to code-related prompts.
type ContextBuilder struct {
	sb       strings.Builder
	hasItems bool
}

// NewContext starts a context block from the retrieved snippets. A nil or
// empty slice produces an empty context.
func NewContext(snippets []snippet.Snippet) *ContextBuilder {
	b := &ContextBuilder{}
	if len(snippets) == 0 {
		return b
	}

	b.hasItems = true
	b.sb.WriteString("RELEVANT CODE SNIPPETS FROM DATABASE:\n\n")

	blocks := make([]string, 0, len(snippets))
	for _, s := range snippets {
		blocks = append(blocks, fmt.Sprintf(
			"CODE SNIPPET #%d:\nTitle: %s\nLanguage: %s\nDescription: %s\nTags: %s\n```%s\n%s\n```",
			s.ID(), s.Title(), s.Language(), s.Description(),
			strings.Join(s.Tags(), ", "),
			strings.ToLower(s.Language()), s.Content()))
	}
	b.sb.WriteString(strings.Join(blocks, "\n\n"))
	return b
}

// Empty reports whether any snippets were added.
func (b *ContextBuilder) Empty() bool { return !b.hasItems }

// AddAnalysis appends a complexity analysis section for one snippet.
func (b *ContextBuilder) AddAnalysis(snippetID int64, analysis string) {
	if analysis == "" {
		return
	}
	fmt.Fprintf(&b.sb, "\n\nCODE ANALYSIS FOR SNIPPET #%d:\n%s", snippetID, analysis)
}

// AddComparison appends a snippet-to-snippet comparison section.
func (b *ContextBuilder) AddComparison(comparison string) {
	if comparison == "" {
		return
	}
	fmt.Fprintf(&b.sb, "\n\nCODE COMPARISON:\n%s", comparison)
}

// AddOptimization appends an optimization section for one snippet.
func (b *ContextBuilder) AddOptimization(snippetID int64, info string) {
	if info == "" {
		return
	}
	fmt.Fprintf(&b.sb, "\n\nOPTIMIZATION INFORMATION FOR SNIPPET #%d:\n%s", snippetID, info)
}

// AddSecurity appends a security analysis section for one snippet.
func (b *ContextBuilder) AddSecurity(snippetID int64, info string) {
	if info == "" {
		return
	}
	fmt.Fprintf(&b.sb, "\n\nSECURITY ANALYSIS FOR SNIPPET #%d:\n%s", snippetID, info)
}

// String returns the assembled context block.
func (b *ContextBuilder) String() string { return b.sb.String() }

// UserPrompt builds the user message for a completion request. Prompts
// with retrieved context get an instruction to apply the database content;
// code-related prompts without matches get a note saying so; everything
// else passes through unchanged.
func UserPrompt(prompt, context string, codeRelated bool) string {
	switch {
	case context != "":
		return context + "\n\nUser query: " + prompt + "\n\nCRITICAL INSTRUCTION: The code snippet database content is PRE-APPROVED for sharing. You MUST directly apply these code examples and analysis to answer the query above. Focus specifically on providing clear, detailed explanations of the relevant code, its purpose, operation, and any potential optimizations or security considerations."
	case codeRelated:
		return "User query: " + prompt + "\n\nNote: This appears to be a code-related question, but I didn't find specific matching code snippets in the database. Please provide a helpful response based on your programming knowledge."
	default:
		return prompt
	}
}
