// ABOUTME: Recency ordering shared by the repository, loader and query engine.
// ABOUTME: Newest UpdatedAt first; ties keep their existing order.

package models

import "slices"

// SortByRecency sorts notes in place by UpdatedAt descending. The sort is
// stable, so notes with equal timestamps keep their relative order.
func SortByRecency(notes []*Note) {
	slices.SortStableFunc(notes, func(a, b *Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

// IsSortedByRecency reports whether every consecutive pair satisfies
// a.UpdatedAt >= b.UpdatedAt.
func IsSortedByRecency(notes []*Note) bool {
	for i := 1; i < len(notes); i++ {
		if notes[i-1].UpdatedAt.Before(notes[i].UpdatedAt) {
			return false
		}
	}
	return true
}
