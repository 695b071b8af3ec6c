// ABOUTME: Terminal UI formatting for atlas output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling and search highlights.

package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/search"
)

// Placeholders shown for empty note fields.
const (
	EmptyTitle   = "Untitled note"
	EmptyContent = "No details added yet."
	NoTags       = "#untagged"
)

const (
	shortIDLen     = 8
	previewRunes   = 72
	timeLayout     = "2006-01-02 15:04"
	fallbackPrefix = "note-"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	mark  = color.New(color.FgBlack, color.BgYellow).SprintFunc()
)

// ShortID trims an id to what a user needs to type back in.
func ShortID(id string) string {
	n := shortIDLen
	if strings.HasPrefix(id, fallbackPrefix) {
		n += len(fallbackPrefix)
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// Highlight marks every occurrence of term in text.
func Highlight(text, term string) string {
	return search.Join(search.Highlight(text, term), func(s string) string {
		return mark(s)
	})
}

// FormatNoteListItem renders one line-group per note, marking term matches.
func FormatNoteListItem(note *models.Note, term string) string {
	var sb strings.Builder

	title := EmptyTitle
	if note.Title != "" {
		title = Highlight(note.Title, term)
	}
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(ShortID(note.ID)), bold(title)))

	indent := strings.Repeat(" ", len(ShortID(note.ID))+4)

	preview := faint(EmptyContent)
	if note.Content != "" {
		preview = Highlight(previewLine(note.Content), term)
	}
	sb.WriteString(fmt.Sprintf("%s%s\n", indent, preview))

	sb.WriteString(fmt.Sprintf("%s%s\n", indent, formatTags(note.Tags, term)))

	sb.WriteString(fmt.Sprintf("%s%s %s\n", indent,
		faint("Updated:"),
		faint(note.UpdatedAt.Local().Format(timeLayout))))

	return sb.String()
}

// previewLine returns the first non-blank line of content, shortened.
func previewLine(content string) string {
	line := ""
	for l := range strings.SplitSeq(content, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}
	if utf8.RuneCountInString(line) <= previewRunes {
		return line
	}
	runes := []rune(line)
	return string(runes[:previewRunes-1]) + "…"
}

func formatTags(tags []string, term string) string {
	if len(tags) == 0 {
		return faint(NoTags)
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = cyan("#") + cyan(Highlight(t, term))
	}
	return strings.Join(parts, " ")
}

func FormatNoteContent(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return faint(EmptyContent) + "\n", nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	title := note.Title
	if title == "" {
		title = EmptyTitle
	}
	sb.WriteString(fmt.Sprintf("%s\n", bold(title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Local().Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Local().Format(timeLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), formatTags(note.Tags, "")))

	sb.WriteString(Separator())
	return sb.String()
}

func FormatTagList(tags []search.TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			cyan("#"+t.Name),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

// FormatFilterSummary describes the active search state above a listing.
func FormatFilterSummary(shown, total int, term string, tags []string) string {
	var parts []string
	if term = strings.TrimSpace(term); term != "" {
		parts = append(parts, fmt.Sprintf("matching %q", term))
	}
	if len(tags) > 0 {
		parts = append(parts, "tagged #"+strings.Join(tags, " #"))
	}
	summary := fmt.Sprintf("%d of %d notes", shown, total)
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, ", ")
	}
	return faint(summary) + "\n"
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func FormatShowMorePrompt(count int) string {
	return faint(fmt.Sprintf("\nShow %d more notes? (y/n) ", count))
}
