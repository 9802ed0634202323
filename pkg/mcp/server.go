// Package mcp exposes movie-memory operations as MCP tools so agent
// clients can read profiles and fetch facts over the same service.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const serverInstructions = "Tools for a movie-fact service. Call get_profile " +
	"for the signed-in user's favorite movie and recent facts, get_movie_fact " +
	"for a verified fact about that movie, and set_favorite_movie to change it."

// Server wraps the mcp-go MCPServer behind the service's auth middleware.
type Server struct {
	mcp    *server.MCPServer
	logger *zap.Logger
}

// NewServer creates the MCP server with tool capabilities enabled.
func NewServer(name, version string, logger *zap.Logger) *Server {
	return &Server{
		mcp: server.NewMCPServer(
			name,
			version,
			server.WithToolCapabilities(true),
			server.WithInstructions(serverInstructions),
		),
		logger: logger,
	}
}

// NewStreamableHTTPServer creates the HTTP transport for this server.
// Stateless mode: every request is self-contained, no session handshake.
// The HTTP mux handles routing to /mcp, so no endpoint path is set here.
func (s *Server) NewStreamableHTTPServer() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(
		s.mcp,
		server.WithStateLess(true),
	)
}

// RegisterTool adds a tool and logs it so the exposed surface is visible
// at startup.
func (s *Server) RegisterTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.mcp.AddTool(tool, handler)
	s.logger.Debug("Registered MCP tool", zap.String("tool", tool.Name))
}
