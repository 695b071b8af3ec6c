// ABOUTME: $EDITOR integration for composing and editing notes.
// ABOUTME: The first line of the edited buffer is the title, the rest is content.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/harper/atlas/internal/models"
)

const tagsLinePrefix = "tags:"

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "atlas-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// editorBuffer renders a note for editing: title line, blank line, content,
// then a tags line.
func editorBuffer(d models.Draft) string {
	var sb strings.Builder
	sb.WriteString(d.Title)
	sb.WriteString("\n\n")
	sb.WriteString(d.Content)
	if !strings.HasSuffix(d.Content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n" + tagsLinePrefix + " " + strings.Join(d.Tags, ", ") + "\n")
	return sb.String()
}

// parseEditorBuffer is the inverse of editorBuffer. A trailing "tags:" line
// is optional; without it the draft keeps fallbackTags.
func parseEditorBuffer(buf string, fallbackTags []string) models.Draft {
	lines := strings.Split(strings.TrimRight(buf, "\n"), "\n")

	tags := fallbackTags
	if last := len(lines) - 1; last >= 0 {
		if rest, ok := strings.CutPrefix(lines[last], tagsLinePrefix); ok {
			tags = models.ParseTagInput(rest)
			lines = lines[:last]
		}
	}

	title := ""
	if len(lines) > 0 {
		title = lines[0]
		lines = lines[1:]
	}

	return models.Draft{
		Title:   title,
		Content: strings.Join(lines, "\n"),
		Tags:    tags,
	}
}
