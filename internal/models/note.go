// ABOUTME: Note model representing a short text note with tags and timestamps.
// ABOUTME: Provides constructors, draft handling, and timestamp helpers.

package models

import (
	"slices"
	"strings"
	"time"
)

// UntitledTitle replaces an empty title when a note is first created.
const UntitledTitle = "Untitled"

type Note struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Draft is unpersisted user input. Tags are raw labels that have already been
// split on commas; normalization happens when the draft becomes a Note.
type Draft struct {
	Title   string
	Content string
	Tags    []string
}

func NewNote(title, content string, tags []string) *Note {
	return NewNoteAt(title, content, tags, time.Now())
}

// NewNoteAt builds a note stamped with the given creation time.
func NewNoteAt(title, content string, tags []string, now time.Time) *Note {
	if title == "" {
		title = UntitledTitle
	}
	return &Note{
		ID:        NewID(),
		Title:     title,
		Content:   content,
		Tags:      NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (n *Note) Touch() {
	n.TouchAt(time.Now())
}

// TouchAt sets UpdatedAt, never letting it fall behind CreatedAt.
func (n *Note) TouchAt(t time.Time) {
	if t.Before(n.CreatedAt) {
		t = n.CreatedAt
	}
	n.UpdatedAt = t
}

// Apply replaces title, content and tags from a draft. The title is taken
// as-is, so an edit may leave it empty.
func (n *Note) Apply(d Draft) {
	n.Title = d.Title
	n.Content = d.Content
	n.Tags = NormalizeTags(d.Tags)
}

func (n *Note) HasTag(name string) bool {
	return slices.Contains(n.Tags, name)
}

// Clone returns a deep copy so callers can't reach into a repository's slice.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = slices.Clone(n.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

// Trimmed returns the draft with surrounding whitespace removed from title and content.
func (d Draft) Trimmed() Draft {
	return Draft{
		Title:   strings.TrimSpace(d.Title),
		Content: strings.TrimSpace(d.Content),
		Tags:    d.Tags,
	}
}

// IsBlank reports whether both title and content are empty after trimming.
func (d Draft) IsBlank() bool {
	t := d.Trimmed()
	return t.Title == "" && t.Content == ""
}
