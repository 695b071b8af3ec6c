// ABOUTME: Add command for creating new notes.
// ABOUTME: Supports inline content, file input, or $EDITOR.

package main

import (
	"fmt"
	"os"

	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/ui"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new note",
	Long: `Create a new note. Content can be provided via --content, --file, or $EDITOR.

An empty title becomes "Untitled". A note with neither title nor content is not saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title string
		if len(args) > 0 {
			title = args[0]
		}

		tagsFlag, _ := cmd.Flags().GetString("tags")
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")

		draft := models.Draft{Title: title, Tags: models.ParseTagInput(tagsFlag)}

		switch {
		case cmd.Flags().Changed("content"):
			draft.Content = contentFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			draft.Content = string(data)
		default:
			buf, err := openEditor(editorBuffer(draft))
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			draft = parseEditorBuffer(buf, draft.Tags)
		}

		note, saved, err := repo.Submit("", draft)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		if !saved {
			fmt.Println("Nothing to save: a note needs a title or content.")
			return nil
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %s", ui.ShortID(note.ID))))
		return nil
	},
}

func init() {
	addCmd.Flags().String("tags", "", "comma-separated tags")
	addCmd.Flags().String("content", "", "note content (inline)")
	addCmd.Flags().String("file", "", "read content from file")
	rootCmd.AddCommand(addCmd)
}
