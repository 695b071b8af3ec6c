// ABOUTME: MCP tools for note CRUD, search, and tag operations.
// ABOUTME: Each handler resolves ids by prefix and delegates to the repository.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"github.com/harper/atlas/internal/db"
	"github.com/harper/atlas/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a note. At least one of title or content must be non-blank.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title (defaults to Untitled)"},
				"content": {"type": "string", "description": "Note body"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Tags, normalized to lowercase-hyphenated form"}
			}
		}`),
	}, s.handleAddNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes newest first, optionally filtered by a search term and required tags",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Case-insensitive substring of title, content, or a tag"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Notes must carry every one of these tags"},
				"limit": {"type": "integer", "description": "Max results (0 for all)", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note. Omitted fields keep their current value; tags replace the whole set.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "New tag set"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag in use with the number of notes carrying it",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)

	s.server.AddTool(&mcp.Tool{
		Name:        "add_tag",
		Description: "Add a tag to a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"tag": {"type": "string", "description": "Tag name"}
			},
			"required": ["id", "tag"]
		}`),
	}, s.handleAddTag)

	s.server.AddTool(&mcp.Tool{
		Name:        "remove_tag",
		Description: "Remove a tag from a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"tag": {"type": "string", "description": "Tag name"}
			},
			"required": ["id", "tag"]
		}`),
	}, s.handleRemoveTag)
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// jsonResult renders notes in the persisted record shape.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to encode result: %v", err)
	}
	return textResult(string(data))
}

func records(list []*models.Note) []*db.NoteRecord {
	out := make([]*db.NoteRecord, len(list))
	for i, n := range list {
		out[i] = db.FromModel(n)
	}
	return out
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, saved, err := s.repo.Submit("", models.Draft{
		Title:   params.Title,
		Content: params.Content,
		Tags:    params.Tags,
	})
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}
	if !saved {
		return errorResult("note needs a title or content"), nil
	}

	s.logger.Debug("mcp created note", slog.String("id", note.ID))
	return textResult(fmt.Sprintf("Created note %s", note.ID)), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Search string   `json:"search"`
		Tags   []string `json:"tags"`
		Limit  int      `json:"limit"`
	}
	params.Limit = defaultListLimit
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	list := s.repo.Filter(params.Search, params.Tags)
	if params.Limit > 0 && len(list) > params.Limit {
		list = list[:params.Limit]
	}
	return jsonResult(records(list)), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.repo.FindByPrefix(params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(db.FromModel(note)), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string    `json:"id"`
		Title   *string   `json:"title"`
		Content *string   `json:"content"`
		Tags    *[]string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.repo.FindByPrefix(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	draft := models.Draft{Title: note.Title, Content: note.Content, Tags: note.Tags}
	if params.Title != nil {
		draft.Title = *params.Title
	}
	if params.Content != nil {
		draft.Content = *params.Content
	}
	if params.Tags != nil {
		draft.Tags = *params.Tags
	}

	updated, saved, err := s.repo.Submit(note.ID, draft)
	if err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	if !saved {
		return errorResult("note needs a title or content"), nil
	}
	return textResult(fmt.Sprintf("Updated note %s", updated.ID)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.repo.FindByPrefix(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	s.repo.Delete(note.ID)
	return textResult(fmt.Sprintf("Deleted note %s", note.ID)), nil
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type tagView struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	counts := s.repo.TagCounts()
	out := make([]tagView, len(counts))
	for i, tc := range counts {
		out[i] = tagView(tc)
	}
	return jsonResult(out), nil
}

func (s *Server) handleAddTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.editTags(req, func(tags []string, tag string) []string {
		return append(tags, tag)
	}, "Added tag '%s' to note %s")
}

func (s *Server) handleRemoveTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.editTags(req, func(tags []string, tag string) []string {
		return slices.DeleteFunc(tags, func(t string) bool { return t == tag })
	}, "Removed tag '%s' from note %s")
}

func (s *Server) editTags(req *mcp.CallToolRequest, edit func(tags []string, tag string) []string, done string) (*mcp.CallToolResult, error) {
	var params struct {
		ID  string `json:"id"`
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	tag := models.NormalizeTag(params.Tag)
	if tag == "" {
		return errorResult("tag cannot be empty"), nil
	}

	note, err := s.repo.FindByPrefix(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	tags := models.NormalizeTags(edit(slices.Clone(note.Tags), tag))
	if slices.Equal(tags, note.Tags) {
		return textResult(fmt.Sprintf("Note %s unchanged", note.ID)), nil
	}

	updated, err := s.repo.Update(note.ID, models.Draft{
		Title:   note.Title,
		Content: note.Content,
		Tags:    tags,
	})
	if err != nil {
		return errorResult("failed to update tags: %v", err), nil
	}
	return textResult(fmt.Sprintf(done, tag, updated.ID)), nil
}
