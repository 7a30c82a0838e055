// Package mcp exposes the ingested documentation corpus to AI agents over
// the Model Context Protocol.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/docschat/docschat/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Answerer answers a single question against the corpus.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Server wraps an MCP server that exposes documentation search tools.
type Server struct {
	store vectordb.VectorStore
	svc   Answerer
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store vectordb.VectorStore, svc Answerer) *Server {
	s := &Server{
		store: store,
		svc:   svc,
	}

	s.mcp = server.NewMCPServer(
		"docschat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(askDocsTool, s.handleAskDocs)
}

// Serve starts the MCP server on stdio. Stdout carries MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
