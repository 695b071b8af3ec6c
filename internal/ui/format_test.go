// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates placeholders, highlighting, and markdown rendering.

package ui

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/search"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testNote(title, content string, tags ...string) *models.Note {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return &models.Note{
		ID:        "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		Title:     title,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFormatNoteListItem(t *testing.T) {
	note := testNote("Test Note", "first line\nsecond line", "important", "work")

	output := FormatNoteListItem(note, "")

	if !strings.Contains(output, "1b4e28ba") {
		t.Error("expected output to contain ID prefix")
	}
	if strings.Contains(output, "1b4e28ba-2fa1") {
		t.Error("expected only the short ID")
	}
	if !strings.Contains(output, "Test Note") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "first line") || strings.Contains(output, "second line") {
		t.Error("expected preview of the first line only")
	}
	if !strings.Contains(output, "#important #work") {
		t.Errorf("expected hash-prefixed tags, got %q", output)
	}
}

func TestFormatNoteListItemPlaceholders(t *testing.T) {
	output := FormatNoteListItem(testNote("", ""), "")

	for _, want := range []string{EmptyTitle, EmptyContent, NoTags} {
		if !strings.Contains(output, want) {
			t.Errorf("expected placeholder %q in %q", want, output)
		}
	}
}

func TestFormatNoteListItemHighlights(t *testing.T) {
	var marked []string
	orig := mark
	mark = func(a ...interface{}) string {
		s := a[0].(string)
		marked = append(marked, s)
		return "[" + s + "]"
	}
	t.Cleanup(func() { mark = orig })

	note := testNote("Weekly Meeting", "meeting notes for the MEETING", "meetings")
	output := FormatNoteListItem(note, "meeting")

	if !strings.Contains(output, "Weekly [Meeting]") {
		t.Errorf("expected highlighted title, got %q", output)
	}
	if !strings.Contains(output, "[meeting] notes for the [MEETING]") {
		t.Errorf("expected highlighted preview, got %q", output)
	}
	if !strings.Contains(output, "#[meeting]s") {
		t.Errorf("expected highlighted tag, got %q", output)
	}
	if len(marked) != 4 {
		t.Errorf("expected 4 marked segments, got %d: %v", len(marked), marked)
	}
}

func TestHighlightIsLiteral(t *testing.T) {
	orig := mark
	mark = func(a ...interface{}) string { return "<" + a[0].(string) + ">" }
	t.Cleanup(func() { mark = orig })

	if got := Highlight("axb a.b", "a.b"); got != "axb <a.b>" {
		t.Errorf("Highlight = %q", got)
	}
	if got := Highlight("plain", ""); got != "plain" {
		t.Errorf("Highlight with empty term = %q", got)
	}
}

func TestShortID(t *testing.T) {
	tests := map[string]string{
		"1b4e28ba-2fa1-11d2-883f-0016d3cca427":  "1b4e28ba",
		"note-00c0ffee12345678deadbeef00000000": "note-00c0ffee",
		"abc":                                   "abc",
	}
	for id, want := range tests {
		if got := ShortID(id); got != want {
			t.Errorf("ShortID(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestPreviewLineTruncates(t *testing.T) {
	long := strings.Repeat("é", previewRunes+10)
	got := previewLine("\n\n  " + long)
	if n := len([]rune(got)); n != previewRunes {
		t.Errorf("expected %d runes, got %d", previewRunes, n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
}

func TestFormatNoteHeader(t *testing.T) {
	output := FormatNoteHeader(testNote("", "body", "work"))

	if !strings.Contains(output, EmptyTitle) {
		t.Error("expected placeholder title")
	}
	if !strings.Contains(output, "1b4e28ba-2fa1-11d2-883f-0016d3cca427") {
		t.Error("expected full ID in header")
	}
	if !strings.Contains(output, "#work") {
		t.Error("expected tags in header")
	}
}

func TestFormatNoteContent(t *testing.T) {
	content := "# Hello\n\nThis is **bold** text."

	output, err := FormatNoteContent(content)
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}

	if output == "" {
		t.Error("expected non-empty output")
	}

	empty, err := FormatNoteContent("  \n")
	if err != nil {
		t.Fatalf("failed to format empty content: %v", err)
	}
	if !strings.Contains(empty, EmptyContent) {
		t.Errorf("expected placeholder for empty content, got %q", empty)
	}
}

func TestFormatTagList(t *testing.T) {
	tags := []search.TagCount{
		{Name: "work", Count: 5},
		{Name: "personal", Count: 3},
	}

	output := FormatTagList(tags)

	if !strings.Contains(output, "#work") {
		t.Error("expected output to contain '#work'")
	}
	if !strings.Contains(output, "(5)") {
		t.Error("expected output to contain count '5'")
	}
}

func TestFormatFilterSummary(t *testing.T) {
	got := FormatFilterSummary(2, 5, " meeting ", []string{"work", "q3"})
	want := `2 of 5 notes matching "meeting", tagged #work #q3` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := FormatFilterSummary(5, 5, "", nil); got != "5 of 5 notes\n" {
		t.Errorf("got %q", got)
	}
}
