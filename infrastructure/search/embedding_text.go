package search

import (
	"fmt"

	"github.com/codevault/codevault/domain/snippet"
)

// BuildEmbeddingText renders the text embedded for a snippet: title,
// language, and description headers followed by the content, with tags
// appended when present. Content beyond contentBudget characters is cut
// off so oversized snippets stay within the embedding model's window.
func BuildEmbeddingText(s snippet.Snippet, contentBudget int) string {
	content := s.Content()
	if contentBudget > 0 && len(content) > contentBudget {
		content = content[:contentBudget]
	}

	text := fmt.Sprintf("Title: %s\nLanguage: %s\nDescription: %s\n\n%s",
		s.Title(), s.Language(), s.Description(), content)

	if tagString := s.TagString(); tagString != "" {
		text += "\nTags: " + tagString
	}

	return text
}
