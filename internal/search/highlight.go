// ABOUTME: Search-term highlighting for displayed note text.
// ABOUTME: Splits text into marked and unmarked segments without altering it.

package search

import (
	"regexp"
	"strings"
)

// Segment is a run of text; Match marks an occurrence of the search term.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text around every case-insensitive occurrence of term,
// scanning left to right without overlaps. The term is matched literally.
// Joining the segment texts always reproduces text.
func Highlight(text, term string) []Segment {
	if text == "" {
		return nil
	}
	re := termPattern(term)
	if re == nil {
		return []Segment{{Text: text}}
	}

	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			segments = append(segments, Segment{Text: text[pos:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Match: true})
		pos = m[1]
	}
	if pos < len(text) {
		segments = append(segments, Segment{Text: text[pos:]})
	}
	return segments
}

// termPattern compiles the literal, case-folded matcher shared by Filter and
// Highlight. A blank term yields nil.
func termPattern(term string) *regexp.Regexp {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
}

// Join concatenates segments, wrapping matches with mark.
func Join(segments []Segment, mark func(string) string) string {
	var sb strings.Builder
	for _, s := range segments {
		if s.Match && mark != nil {
			sb.WriteString(mark(s.Text))
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}
