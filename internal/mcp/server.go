// ABOUTME: MCP server exposing the atlas note repository to AI agents.
// ABOUTME: Provides tools, resources, and prompts over stdio.

package mcp

import (
	"context"
	"log/slog"

	"github.com/harper/atlas/internal/notes"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server  *mcp.Server
	repo    *notes.Repository
	logger  *slog.Logger
	version string
}

func NewServer(repo *notes.Repository, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{repo: repo, logger: logger, version: version}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "atlas",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp server starting", slog.Int("notes", s.repo.Len()))
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
