// ABOUTME: Tag command for managing note tags.
// ABOUTME: Provides add, rm, and list subcommands.

package main

import (
	"fmt"
	"slices"

	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/ui"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long:  `Add, remove, or list tags on notes. Tags are lowercased and spaces become hyphens.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id-prefix> <tag>",
	Short: "Add a tag to a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return retag(args[0], args[1], func(tags []string, tag string) []string {
			return append(tags, tag)
		}, "Added tag %q to note %s")
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id-prefix> <tag>",
	Short: "Remove a tag from a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return retag(args[0], args[1], func(tags []string, tag string) []string {
			return slices.DeleteFunc(tags, func(t string) bool { return t == tag })
		}, "Removed tag %q from note %s")
	},
}

func retag(prefix, tagName string, edit func([]string, string) []string, done string) error {
	tag := models.NormalizeTag(tagName)
	if tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}

	note, err := repo.FindByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("failed to get note: %w", err)
	}

	tags := models.NormalizeTags(edit(slices.Clone(note.Tags), tag))
	if slices.Equal(tags, note.Tags) {
		fmt.Printf("Note %s unchanged.\n", ui.ShortID(note.ID))
		return nil
	}

	updated, err := repo.Update(note.ID, models.Draft{
		Title:   note.Title,
		Content: note.Content,
		Tags:    tags,
	})
	if err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}

	fmt.Println(ui.Success(fmt.Sprintf(done, tag, ui.ShortID(updated.ID))))
	return nil
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		tags := repo.TagCounts()
		if len(tags) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		fmt.Print(ui.FormatTagList(tags))
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
}
