// ABOUTME: Tests for recency ordering.
// ABOUTME: Checks descending order and stability on ties.

package models

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestSortByRecencyStableOnTies(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := &Note{ID: "a", UpdatedAt: base}
	b := &Note{ID: "b", UpdatedAt: base}
	c := &Note{ID: "c", UpdatedAt: base.Add(time.Minute)}

	notes := []*Note{a, b, c}
	SortByRecency(notes)

	if notes[0].ID != "c" || notes[1].ID != "a" || notes[2].ID != "b" {
		t.Errorf("unexpected order: %s %s %s", notes[0].ID, notes[1].ID, notes[2].ID)
	}
}

func TestSortByRecencyProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		offsets := rapid.SliceOf(rapid.IntRange(-1000, 1000)).Draw(t, "offsets")
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		notes := make([]*Note, len(offsets))
		for i, off := range offsets {
			notes[i] = &Note{UpdatedAt: base.Add(time.Duration(off) * time.Second)}
		}
		SortByRecency(notes)

		if !IsSortedByRecency(notes) {
			t.Fatal("notes not sorted by UpdatedAt descending")
		}
	})
}
