// ABOUTME: List command for displaying notes newest first.
// ABOUTME: Supports substring search with highlighted matches and AND tag filters.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/harper/atlas/internal/models"
	"github.com/harper/atlas/internal/ui"
	"github.com/spf13/cobra"
)

const defaultListLimit = 20

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long: `List notes, most recently updated first.

--search matches a case-insensitive substring of the title, content, or any tag.
--tag may be repeated; a note must carry every tag given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		tagFlags, _ := cmd.Flags().GetStringSlice("tag")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		required := models.NormalizeTags(tagFlags)
		results := repo.Filter(searchFlag, required)
		total := repo.Len()

		if len(results) == 0 {
			if total == 0 {
				fmt.Println("No notes yet. Add one with `atlas add`.")
			} else {
				fmt.Println("No notes found.")
			}
			return nil
		}

		filtered := strings.TrimSpace(searchFlag) != "" || len(required) > 0
		if filtered {
			fmt.Print(ui.FormatFilterSummary(len(results), total, searchFlag, required))
		}

		shown := results
		if limitFlag > 0 && len(shown) > limitFlag {
			shown = shown[:limitFlag]
		}
		printNotes(shown, searchFlag)

		remaining := len(results) - len(shown)
		if remaining == 0 {
			return nil
		}

		fmt.Print(ui.FormatShowMorePrompt(remaining))
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			// EOF or input error - just don't show more
			fmt.Println()
			return nil //nolint:nilerr // Intentional: silently exit on stdin issues
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response == "y" || response == "yes" {
			fmt.Println()
			printNotes(results[len(shown):], searchFlag)
		}
		return nil
	},
}

func printNotes(list []*models.Note, term string) {
	for _, note := range list {
		fmt.Print(ui.FormatNoteListItem(note, term))
	}
}

func init() {
	listCmd.Flags().StringSliceP("tag", "t", nil, "only notes with this tag (repeatable)")
	listCmd.Flags().StringP("search", "s", "", "search query")
	listCmd.Flags().IntP("limit", "n", defaultListLimit, "number of results (0 for all)")
	rootCmd.AddCommand(listCmd)
}
