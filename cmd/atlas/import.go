// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Reads JSON exports, raw storage blobs, and markdown with front matter.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/harper/atlas/internal/db"
	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long: `Import notes from a JSON export, a raw storage blob (a JSON array of notes),
a markdown file, or a directory of markdown files.

Notes keep their ids and timestamps; notes whose id already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		var incoming []*models.Note
		switch {
		case info.IsDir():
			incoming, err = readMarkdownDir(path)
		case strings.HasSuffix(path, ".json"):
			incoming, err = readJSON(path)
		default:
			var note *models.Note
			note, err = readMarkdownFile(path)
			incoming = []*models.Note{note}
		}
		if err != nil {
			return err
		}

		added, skipped := repo.Import(incoming)
		msg := fmt.Sprintf("Imported %d notes", added)
		if skipped > 0 {
			msg += fmt.Sprintf(" (%d skipped)", skipped)
		}
		fmt.Println(ui.Success(msg))
		return nil
	},
}

// readJSON accepts an ExportData document or a bare array in the storage
// blob format.
func readJSON(path string) ([]*models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		notes, rejected, err := db.DecodeNotes(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, r := range rejected {
			fmt.Printf("Warning: skipping record: %v\n", r)
		}
		return notes, nil
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	notes := make([]*models.Note, 0, len(export.Notes))
	for _, en := range export.Notes {
		notes = append(notes, en.toModel())
	}
	return notes, nil
}

func readMarkdownDir(dir string) ([]*models.Note, error) {
	var notes []*models.Note

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		note, err := readMarkdownFile(path)
		if err != nil {
			fmt.Printf("Warning: failed to import %s: %v\n", path, err)
			return nil
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

type markdownMeta struct {
	ID      string    `yaml:"id"`
	Title   *string   `yaml:"title"`
	Tags    []string  `yaml:"tags"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
}

func readMarkdownFile(path string) (*models.Note, error) {
	f, err := os.Open(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var meta markdownMeta
	body, err := frontmatter.Parse(f, &meta)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	title := strings.TrimSuffix(filepath.Base(path), ".md")
	if meta.Title != nil {
		title = *meta.Title
	}

	return &models.Note{
		ID:        meta.ID,
		Title:     title,
		Content:   strings.TrimSpace(string(body)),
		Tags:      meta.Tags,
		CreatedAt: meta.Created,
		UpdatedAt: meta.Updated,
	}, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
