// ABOUTME: Export command for backing up notes.
// ABOUTME: Supports JSON and markdown-with-front-matter export formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

type ExportNote struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"-"`
	Tags      []string  `json:"tags" yaml:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated"`
}

type ExportData struct {
	ExportedAt time.Time    `json:"exported_at"`
	Version    string       `json:"version"`
	Notes      []ExportNote `json:"notes"`
}

func toExportNote(n *models.Note) ExportNote {
	return ExportNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}
}

func (en ExportNote) toModel() *models.Note {
	return &models.Note{
		ID:        en.ID,
		Title:     en.Title,
		Content:   en.Content,
		Tags:      en.Tags,
		CreatedAt: en.CreatedAt,
		UpdatedAt: en.UpdatedAt,
	}
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export notes to a JSON file or a directory of markdown files with YAML front matter.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		notePrefix, _ := cmd.Flags().GetString("note")

		var list []*models.Note
		if notePrefix != "" {
			note, err := repo.FindByPrefix(notePrefix)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			list = append(list, note)
		} else {
			list = repo.ListAll()
		}

		switch format {
		case "json":
			return exportJSON(list, outputPath)
		case "md":
			return exportMarkdown(list, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportJSON(list []*models.Note, outputPath string) error {
	export := ExportData{
		ExportedAt: time.Now().UTC(),
		Version:    exportVersion,
		Notes:      make([]ExportNote, 0, len(list)),
	}
	for _, n := range list {
		export.Notes = append(export.Notes, toExportNote(n))
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return err
	}
	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(list), outputPath)))
	return nil
}

func exportMarkdown(list []*models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return err
	}

	for _, n := range list {
		data, err := markdownDocument(toExportNote(n))
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", ui.ShortID(n.ID), err)
		}

		filePath := filepath.Join(outputDir, markdownFilename(n))
		if err := os.WriteFile(filePath, data, 0600); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(list), outputDir)))
	return nil
}

func markdownDocument(en ExportNote) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("---\n")

	frontmatter, err := yaml.Marshal(en)
	if err != nil {
		return nil, err
	}
	sb.Write(frontmatter)
	sb.WriteString("---\n\n")
	sb.WriteString(en.Content)
	if en.Content != "" && !strings.HasSuffix(en.Content, "\n") {
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

// markdownFilename keeps titles readable while the short id avoids collisions
// between notes with the same title.
func markdownFilename(n *models.Note) string {
	title := n.Title
	if strings.TrimSpace(title) == "" {
		title = models.UntitledTitle
	}
	return sanitizeFilename(title) + "-" + ui.ShortID(n.ID) + ".md"
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if runes := []rune(name); len(runes) > 100 {
		name = string(runes[:100])
	}
	return name
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("note", "n", "", "single note ID to export")
	rootCmd.AddCommand(exportCmd)
}
