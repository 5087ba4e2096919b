package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mbalza/DocChatAPI/internal/rag"
	"github.com/mbalza/DocChatAPI/pkg/logger_i"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server exposes the question answering pipeline as MCP tools, so agents
// can ask questions against ingested documents over stdio.
type Server struct {
	ragService rag.Service
	server     *mcp.Server
	logger     *logger_i.Logger
}

func NewServer(ragService rag.Service) (*Server, error) {
	if ragService == nil {
		return nil, errors.New("rag service is required")
	}

	impl := &mcp.Implementation{
		Name:    "docchat",
		Version: Version,
	}

	s := &Server{
		ragService: ragService,
		server:     mcp.NewServer(impl, nil),
		logger:     logger_i.NewLogger("MCP Server"),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio. It blocks until the context is
// cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
