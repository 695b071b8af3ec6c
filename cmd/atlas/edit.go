// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Field flags update in place; without them the note opens in $EDITOR.

package main

import (
	"fmt"

	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long: `Change a note's title, content, or tags.

With --title, --content, or --tags only those fields change. Otherwise the note
opens in $EDITOR: the first line is the title and a final "tags:" line holds the tags.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := repo.FindByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		current := models.Draft{Title: note.Title, Content: note.Content, Tags: note.Tags}
		draft := current

		flags := cmd.Flags()
		if flags.Changed("title") || flags.Changed("content") || flags.Changed("tags") {
			if flags.Changed("title") {
				draft.Title, _ = flags.GetString("title")
			}
			if flags.Changed("content") {
				draft.Content, _ = flags.GetString("content")
			}
			if flags.Changed("tags") {
				tags, _ := flags.GetString("tags")
				draft.Tags = models.ParseTagInput(tags)
			}
		} else {
			initial := editorBuffer(current)
			buf, err := openEditor(initial)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			if buf == initial {
				fmt.Println("No changes made.")
				return nil
			}
			draft = parseEditorBuffer(buf, current.Tags)
		}

		updated, saved, err := repo.Submit(note.ID, draft)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		if !saved {
			fmt.Println("Nothing to save: a note needs a title or content.")
			return nil
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", ui.ShortID(updated.ID))))
		return nil
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "new content")
	editCmd.Flags().String("tags", "", "replace tags (comma-separated)")
	rootCmd.AddCommand(editCmd)
}
