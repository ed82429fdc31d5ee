package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/v0xg/selfheal/internal/a11y"
)

type selectorReq struct {
	Selector string `json:"selector"`
}

type fillReq struct {
	Selector string `json:"selector"`
	Value    string `json:"value"`
}

type navigateReq struct {
	URL string `json:"url"`
}

type scanReq struct {
	MinSeverity string `json:"minSeverity,omitempty"`
}

func (s *Server) register(srv *mcp.Server) {
	s.registerNavigate(srv)
	s.registerClick(srv)
	s.registerFill(srv)
	s.registerText(srv)
	s.registerInputValue(srv)
	s.registerVisible(srv)
	s.registerEvents(srv)
	s.registerScan(srv)
}

func (s *Server) registerNavigate(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_navigate",
		Description: "Navigate the browser session to a URL and wait for the page to settle.",
		InputSchema: inputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "URL to open"},
		}, []string{"url"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decode[navigateReq](req)
		if err != nil {
			return toolError(err), nil
		}
		if err := s.driver.Navigate(ctx, in.URL); err != nil {
			return toolError(err), nil
		}
		return textResult(map[string]any{"ok": true, "url": in.URL})
	})
}

func (s *Server) registerClick(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_click",
		Description: "Click an element, healing the selector automatically if it no longer matches.",
		InputSchema: selectorSchema(),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decode[selectorReq](req)
		if err != nil {
			return toolError(err), nil
		}
		if err := s.sess.Click(ctx, in.Selector); err != nil {
			return toolError(err), nil
		}
		return textResult(map[string]any{"ok": true, "selector": in.Selector})
	})
}

func (s *Server) registerFill(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_fill",
		Description: "Fill an input element with text, healing the selector automatically if needed.",
		InputSchema: inputSchema(map[string]any{
			"selector": map[string]any{"type": "string", "description": "CSS selector of the input"},
			"value":    map[string]any{"type": "string", "description": "Text to fill in"},
		}, []string{"selector", "value"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decode[fillReq](req)
		if err != nil {
			return toolError(err), nil
		}
		if err := s.sess.Fill(ctx, in.Selector, in.Value); err != nil {
			return toolError(err), nil
		}
		return textResult(map[string]any{"ok": true, "selector": in.Selector})
	})
}

func (s *Server) registerText(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_text",
		Description: "Read an element's text content, healing the selector automatically if needed.",
		InputSchema: selectorSchema(),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decode[selectorReq](req)
		if err != nil {
			return toolError(err), nil
		}
		text, err := s.sess.TextContent(ctx, in.Selector)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(map[string]any{"selector": in.Selector, "text": text})
	})
}

func (s *Server) registerInputValue(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_input_value",
		Description: "Read an input element's current value, healing the selector automatically if needed.",
		InputSchema: selectorSchema(),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decode[selectorReq](req)
		if err != nil {
			return toolError(err), nil
		}
		value, err := s.sess.InputValue(ctx, in.Selector)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(map[string]any{"selector": in.Selector, "value": value})
	})
}

func (s *Server) registerVisible(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_visible",
		Description: "Check whether an element is visible, healing the selector automatically if needed.",
		InputSchema: selectorSchema(),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decode[selectorReq](req)
		if err != nil {
			return toolError(err), nil
		}
		visible, err := s.sess.IsVisible(ctx, in.Selector)
		if err != nil {
			return toolError(err), nil
		}
		return textResult(map[string]any{"selector": in.Selector, "visible": visible})
	})
}

func (s *Server) registerEvents(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_events",
		Description: "List the healing events recorded in this session, in action order.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}
	srv.AddTool(tool, func(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResult(map[string]any{"events": s.sess.Events()})
	})
}

func (s *Server) registerScan(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "selfheal_a11y_scan",
		Description: "Run an accessibility rule pass on the current page, filtered by minimum severity.",
		InputSchema: inputSchema(map[string]any{
			"minSeverity": map[string]any{
				"type":        "string",
				"description": "minor, moderate, serious or critical (default: scanner's configured minimum)",
			},
		}, nil),
	}
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in, err := decode[scanReq](req)
		if err != nil {
			return toolError(err), nil
		}
		violations, err := s.scanner.Scan(ctx, s.driver)
		if err != nil {
			return toolError(err), nil
		}
		if in.MinSeverity != "" {
			violations = a11y.Filter(violations, a11y.Severity(in.MinSeverity))
		}
		return textResult(map[string]any{"violations": violations})
	})
}
