// ABOUTME: MCP prompts for common note-keeping workflows.
// ABOUTME: Prompts steer agents toward the atlas tools with current collection context.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-notes",
		Description: "Get suggestions for organizing and tagging notes",
	}, s.getOrganizeNotesPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Summarize an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID or prefix of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "find-notes",
		Description: "Search notes for a topic and report what was found",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "Word or phrase to look for",
				Required:    true,
			},
		},
	}, s.getFindNotesPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}

func (s *Server) getOrganizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tags := s.repo.DistinctTags()
	existing := "none yet"
	if len(tags) > 0 {
		existing = strings.Join(tags, ", ")
	}

	template := fmt.Sprintf(`Help me organize my %d notes.

Tags already in use: %s

1. Use list_notes to read the notes, and list_tags for how often each tag is used
2. Group the notes by theme
3. Propose a small tag vocabulary, reusing existing tags where they fit
4. Point out untagged notes and notes whose tags do not match their content
5. Apply agreed changes with add_tag, remove_tag, or update_note

Refer to notes by ID so I can check each suggestion.`, s.repo.Len(), existing)

	return userPrompt(template), nil
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID := req.Params.Arguments["note_id"]
	if noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	template := fmt.Sprintf(`Summarize the note with ID %s.

1. Fetch it with get_note
2. Write two or three sentences covering its main point and any action items
3. Do not modify the note unless I ask`, noteID)

	return userPrompt(template), nil
}

func (s *Server) getFindNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := strings.TrimSpace(req.Params.Arguments["topic"])
	if topic == "" {
		return nil, fmt.Errorf("topic argument is required")
	}

	template := fmt.Sprintf(`Find what I have written about %q.

1. Call list_notes with search set to the topic
2. If nothing matches, try related words or list_tags for a fitting tag
3. Report each match with its ID, title, and the sentence that mentions the topic`, topic)

	return userPrompt(template), nil
}
