// Package mcpserver exposes duplicate detection over the Model Context
// Protocol, so agents can query a codebase for clones without shelling
// out to the CLI.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the dupehound tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all dupehound tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "dupehound",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_duplicates",
		Description: describeDuplicates(),
	}, handleAnalyzeDuplicates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_refactor",
		Description: describePreviewRefactor(),
	}, handlePreviewRefactor)
}
