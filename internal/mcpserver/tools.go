package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mbalza/DocChatAPI/internal/adapter/utils"
	"github.com/mbalza/DocChatAPI/internal/config"
)

// AskInput is the input schema for the ask_document tool.
type AskInput struct {
	Question     string `json:"question" jsonschema:"the question to answer from the document"`
	DocumentName string `json:"document_name" jsonschema:"filename of an ingested document to answer from"`
}

// AskOutput is the output schema for the ask_document tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_document",
		Description: "Answer a question from an ingested document, with source citations",
	}, s.handleAsk)
}

// handleAsk runs the pipeline and drains the word stream back into one
// answer, MCP has no use for the pacing.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	ctx = context.WithValue(ctx, config.TRACE_ID_KEY, utils.GetNewUUID())

	chunks, err := s.ragService.ResponseGenerator(ctx, input.Question, input.DocumentName)
	if err != nil {
		return nil, AskOutput{}, err
	}

	var b strings.Builder
	for chunk := range chunks {
		b.WriteString(chunk)
	}

	return nil, AskOutput{Answer: strings.TrimSpace(b.String())}, nil
}
