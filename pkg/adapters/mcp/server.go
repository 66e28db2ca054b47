// Package mcp exposes the live conversation as Model Context Protocol tools, so an
// agent can walk an officer's intake on their behalf.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/cyberdesk/internal/presentation/graph"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/aretw0/cyberdesk/pkg/runner"
	"github.com/aretw0/lifecycle"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource holding the decision tree.
const GraphURI = "cyberdesk://graph"

// SessionResponse is the structured result of every tool.
type SessionResponse struct {
	View domain.View `json:"view" jsonschema_description:"The conversation after the call, with the options currently offered"`
}

// Server wraps a conversation as an MCP server.
type Server struct {
	conv      ports.Conversation
	doc       *domain.Document
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server. version is reported to clients.
func NewServer(conv ports.Conversation, doc *domain.Document, version string, logger *slog.Logger) *Server {
	s := &Server{
		conv:      conv,
		doc:       doc,
		logger:    logger,
		mcpServer: server.NewMCPServer("cyberdesk-mcp", strings.TrimSpace(version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// Serve speaks MCP over in and out until the client disconnects or ctx is
// cancelled.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	errCh := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		errCh <- server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
		return nil
	})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server stopped", "reason", context.Cause(ctx))
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Show the current intake conversation: transcript, offered options and evidence checklist."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleGetSession))

	s.mcpServer.AddTool(mcp.NewTool("select_option",
		mcp.WithDescription("Pick one of the options offered by the latest bot message. Use the option value, not the label."),
		mcp.WithString("value", mcp.Required(), mcp.Description("Option value, e.g. \"Other\" to hand off to the assistant")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleSelect))

	s.mcpServer.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Ask the AI assistant a free-text question. Only valid after selecting \"Other\"."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The question")),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleMessage))

	s.mcpServer.AddTool(mcp.NewTool("new_case",
		mcp.WithDescription("Discard the current case and start over."),
		mcp.WithOutputSchema[SessionResponse](),
	), mcp.NewStructuredToolHandler(s.handleNewCase))
}

func (s *Server) handleGetSession(ctx context.Context, _ mcp.CallToolRequest, _ map[string]interface{}) (SessionResponse, error) {
	return s.settled(ctx)
}

func (s *Server) handleSelect(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	value, _ := args["value"].(string)
	if err := s.conv.Select(ctx, value); err != nil {
		return SessionResponse{}, fmt.Errorf("select failed: %w", err)
	}
	return s.settled(ctx)
}

func (s *Server) handleMessage(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (SessionResponse, error) {
	text, _ := args["text"].(string)
	clean, err := runner.SanitizeInput(text)
	if err != nil {
		s.logger.Warn("mcp message rejected", "err", err, "size", len(text))
		return SessionResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	if err := s.conv.Submit(ctx, clean); err != nil {
		return SessionResponse{}, fmt.Errorf("send failed: %w", err)
	}
	return s.settled(ctx)
}

func (s *Server) handleNewCase(ctx context.Context, _ mcp.CallToolRequest, _ map[string]interface{}) (SessionResponse, error) {
	if err := s.conv.Reset(ctx); err != nil {
		return SessionResponse{}, fmt.Errorf("new case failed: %w", err)
	}
	return s.settled(ctx)
}

// settled waits for any outstanding reply so the agent sees the bot's answer.
func (s *Server) settled(ctx context.Context) (SessionResponse, error) {
	if err := s.conv.Wait(ctx); err != nil {
		return SessionResponse{}, err
	}
	return SessionResponse{View: s.conv.View()}, nil
}

// GraphDocument is the content of the graph resource.
type GraphDocument struct {
	Nodes   map[string]domain.Node `json:"nodes"`
	Mermaid string                 `json:"mermaid"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Decision Tree",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := s.graphJSON()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	})
}

func (s *Server) graphJSON() (string, error) {
	data, err := json.Marshal(GraphDocument{
		Nodes:   s.doc.Nodes,
		Mermaid: graph.GenerateMermaid(s.doc, nil),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode graph: %w", err)
	}
	return string(data), nil
}
