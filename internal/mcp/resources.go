// ABOUTME: MCP resources exposing notes as readable markdown documents.
// ABOUTME: Notes are addressed as atlas://note/{id}, where id may be a prefix.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/atlas/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "atlas://note/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID or ID prefix",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	note, err := s.repo.FindByPrefix(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     renderMarkdown(note),
			},
		},
	}, nil
}

func renderMarkdown(note *models.Note) string {
	var sb strings.Builder
	title := note.Title
	if title == "" {
		title = models.UntitledTitle
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(note.Tags) > 0 {
		fmt.Fprintf(&sb, "**Tags:** %s\n\n", strings.Join(note.Tags, ", "))
	}
	fmt.Fprintf(&sb, "_Updated %s_\n\n", note.UpdatedAt.UTC().Format("2006-01-02 15:04 MST"))
	sb.WriteString(note.Content)
	return sb.String()
}
