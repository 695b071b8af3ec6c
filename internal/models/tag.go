// ABOUTME: Tag normalization for categorizing notes.
// ABOUTME: Tags are lowercase, trimmed, with inner whitespace collapsed to hyphens.

package models

import "strings"

// NormalizeTag trims the name, joins whitespace-separated words with a single
// hyphen and lowercases the result. Blank input yields "".
func NormalizeTag(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// NormalizeTags normalizes every tag, dropping empties and duplicates while
// keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		name := NormalizeTag(t)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// ParseTagInput splits comma-separated free text into trimmed, non-empty labels.
func ParseTagInput(input string) []string {
	var tags []string
	for _, tag := range strings.Split(input, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
