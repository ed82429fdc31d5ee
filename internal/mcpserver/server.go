// Package mcpserver exposes a healing session as MCP tools over stdio.
// Pure transport plumbing: every tool delegates to the session; no healing
// decisions live here.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/v0xg/selfheal/internal/a11y"
	"github.com/v0xg/selfheal/internal/browser"
	"github.com/v0xg/selfheal/internal/session"
)

// Server bridges MCP tool calls onto one healing session.
type Server struct {
	sess    *session.Session
	driver  *browser.Driver
	scanner *a11y.Scanner
	log     *zap.Logger
}

// New builds the server over an open session and its driver.
func New(sess *session.Session, driver *browser.Driver, scanner *a11y.Scanner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{sess: sess, driver: driver, scanner: scanner, log: logger}
}

// Run serves the tools over stdio until the context ends.
func (s *Server) Run(ctx context.Context) error {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "selfheal",
		Version: "1.0.0",
	}, nil)
	s.register(srv)
	s.log.Info("MCP server starting on stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// inputSchema builds the JSON schema the SDK requires on each tool. Must
// be an object schema or the SDK rejects it.
func inputSchema(properties map[string]any, required []string) json.RawMessage {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	data, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("marshal tool schema: %v", err))
	}
	return data
}

func selectorSchema() json.RawMessage {
	return inputSchema(map[string]any{
		"selector": map[string]any{"type": "string", "description": "CSS selector of the target element"},
	}, []string{"selector"})
}

// textResult wraps a payload as a text tool result.
func textResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}

// toolError reports a tool-level failure without failing the protocol.
func toolError(err error) *mcp.CallToolResult {
	var res mcp.CallToolResult
	res.SetError(err)
	return &res
}

func decode[T any](req *mcp.CallToolRequest) (T, error) {
	var in T
	if req.Params.Arguments != nil {
		if err := json.Unmarshal(req.Params.Arguments, &in); err != nil {
			return in, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	return in, nil
}
