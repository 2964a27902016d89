package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/ifwm/internal/output"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("layout",
			mcp.WithDescription("Show the window manager's containers, their tabs and which container has focus"),
			mcp.WithNumber("container", mcp.Description("Only show the container with this frame window id")),
			mcp.WithBoolean("focused", mcp.Description("Only show the focused container")),
			mcp.WithBoolean("refresh", mcp.Description("Bypass the layout cache")),
		),
		s.handleLayout,
	)

	s.mcp.AddTool(
		mcp.NewTool("bindings",
			mcp.WithDescription("List the configured key bindings with their actions and contexts"),
		),
		s.handleBindings,
	)
}

func (s *Server) handleLayout(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	container := intParam(params, "container", 0)
	focused := boolParam(params, "focused", false)
	if boolParam(params, "refresh", false) {
		s.cache.Invalidate()
	}

	layout, err := s.cache.Layout()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v (is ifwm running?)", err)), nil
	}

	switch {
	case container != 0:
		only, ok := layout.Only(uint32(container))
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("container %d not found", container)), nil
		}
		layout = only
	case focused:
		only, ok := layout.Only(layout.Focused)
		if !ok {
			return mcp.NewToolResultError("no container has focus"), nil
		}
		layout = only
	}
	return yamlResult(layout)
}

func (s *Server) handleBindings(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return yamlResult(output.NewBindingsResult(s.cfg.ConfigPath, s.cfg.Settings))
}

func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}
