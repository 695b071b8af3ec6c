// ABOUTME: Query engine deriving filtered views of the note collection.
// ABOUTME: Pure functions over snapshots: tag AND-filter, substring search, tag sets.

package search

import (
	"regexp"
	"slices"
	"strings"

	"github.com/harper/atlas/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TagCount is a tag with the number of notes carrying it.
type TagCount struct {
	Name  string
	Count int
}

// Filter returns the notes carrying every tag in requiredTags and, when term is
// not blank, containing term (case-insensitively) in the title, the content or
// any tag. The result is sorted by recency; notes itself is left untouched.
func Filter(notes []*models.Note, term string, requiredTags []string) []*models.Note {
	required := models.NormalizeTags(requiredTags)
	pattern := termPattern(term)

	out := make([]*models.Note, 0, len(notes))
	for _, n := range notes {
		if !hasAllTags(n, required) {
			continue
		}
		if pattern != nil && !matchesTerm(n, pattern) {
			continue
		}
		out = append(out, n)
	}

	models.SortByRecency(out)
	return out
}

func hasAllTags(n *models.Note, required []string) bool {
	for _, tag := range required {
		if !n.HasTag(tag) {
			return false
		}
	}
	return true
}

// matchesTerm uses the same pattern Highlight marks with, so a note is a hit
// exactly when some displayed field would carry a highlight.
func matchesTerm(n *models.Note, pattern *regexp.Regexp) bool {
	if pattern.MatchString(n.Title) || pattern.MatchString(n.Content) {
		return true
	}
	return slices.ContainsFunc(n.Tags, pattern.MatchString)
}

// DistinctTags returns every tag used by any note, once, in locale-aware order.
func DistinctTags(notes []*models.Note) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, n := range notes {
		for _, tag := range n.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sortTags(tags)
	return tags
}

// CountTags returns each distinct tag with its usage count, in the same order
// as DistinctTags.
func CountTags(notes []*models.Note) []TagCount {
	counts := make(map[string]int)
	for _, n := range notes {
		for _, tag := range n.Tags {
			counts[tag]++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sortTags(names)

	result := make([]TagCount, len(names))
	for i, name := range names {
		result[i] = TagCount{Name: name, Count: counts[name]}
	}
	return result
}

func sortTags(tags []string) {
	// collators carry buffers and are not safe to share
	col := collate.New(language.Und)
	slices.SortFunc(tags, func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
