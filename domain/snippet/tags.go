package snippet

import "strings"

// ParseTags splits a comma-separated tag string into a normalized tag set.
func ParseTags(tagString string) []string {
	if tagString == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(tagString, ","))
}

// JoinTags joins tags into the comma-separated storage form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// NormalizeTags trims whitespace, drops empty entries and deduplicates
// case-insensitively, keeping the first spelling encountered.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))

	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
