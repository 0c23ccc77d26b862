package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpgo "go.klarlabs.de/mcp"
	mcpserver "go.klarlabs.de/mcp/server"
	"github.com/google/uuid"

	"github.com/nutridb/usda-mcp/domain/middleware"
	"github.com/nutridb/usda-mcp/domain/tool"
)

// ToolServer wraps an MCP server to expose the registered database tools.
type ToolServer struct {
	srv      *mcpgo.Server
	registry tool.Registry
	info     mcpgo.ServerInfo
	invoke   middleware.Handler
}

// ToolServerConfig configures a tool MCP server.
type ToolServerConfig struct {
	// Name is the server name.
	Name string

	// Version is the server version.
	Version string

	// Registry is the tool registry containing tools to expose.
	Registry tool.Registry

	// Description is an optional server description.
	Description string

	// Instructions provides usage instructions for clients.
	Instructions string

	// Middleware wraps every tool invocation, outermost first.
	Middleware []middleware.Middleware
}

// NewToolServer creates a new MCP server that exposes the registry's tools.
// Every invocation runs through the configured middleware chain under a
// fresh invocation ID.
func NewToolServer(cfg ToolServerConfig) *ToolServer {
	info := mcpgo.ServerInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Description: cfg.Description,
		Capabilities: mcpgo.Capabilities{
			Tools: true,
		},
	}

	// Build server options
	var opts []mcpgo.Option
	if cfg.Instructions != "" {
		opts = append(opts, mcpgo.WithInstructions(cfg.Instructions))
	}

	srv := mcpgo.NewServer(info, opts...)

	execute := func(ctx context.Context, execCtx *middleware.ExecutionContext) (tool.Result, error) {
		return execCtx.Tool.Execute(ctx, execCtx.Input)
	}

	ts := &ToolServer{
		srv:      srv,
		registry: cfg.Registry,
		info:     info,
		invoke:   middleware.Chain(cfg.Middleware...)(execute),
	}

	// Register all tools from the registry
	if cfg.Registry != nil {
		ts.registerTools()
	}

	return ts
}

// registerTools registers all tools from the registry with the MCP server.
func (s *ToolServer) registerTools() {
	for _, t := range s.registry.List() {
		s.registerTool(t)
	}
}

// registerTool registers a single tool with the MCP server.
func (s *ToolServer) registerTool(t tool.Tool) {
	// Adapt the tool to mcp-go's handler shape. The middleware chain sees
	// the raw argument bag; the protocol layer sees only the rendered text.
	handler := func(ctx context.Context, input json.RawMessage) (string, error) {
		execCtx := &middleware.ExecutionContext{
			InvocationID: uuid.New().String(),
			Tool:         t,
			Input:        input,
		}

		result, err := s.invoke(ctx, execCtx)
		if err != nil {
			return "", err
		}
		return result.Output, nil
	}

	// Register with mcp-go using the fluent API
	s.srv.Tool(t.Name()).
		Description(t.Description()).
		Handler(handler)
}

// Server returns the underlying mcp-go server.
func (s *ToolServer) Server() *mcpgo.Server {
	return s.srv
}

// Use adds protocol-level middleware to the server.
func (s *ToolServer) Use(middlewares ...mcpserver.Middleware) {
	s.srv.Use(middlewares...)
}

// ServeStdio runs the server over stdin/stdout.
func (s *ToolServer) ServeStdio(ctx context.Context, opts ...mcpgo.ServeOption) error {
	return mcpgo.ServeStdio(ctx, s.srv, opts...)
}

// ServeHTTP runs the server over HTTP with SSE.
func (s *ToolServer) ServeHTTP(ctx context.Context, addr string, opts ...mcpgo.HTTPOption) error {
	return mcpgo.ServeHTTP(ctx, s.srv, addr, opts...)
}

// AddTool adds a tool to the server dynamically.
func (s *ToolServer) AddTool(t tool.Tool) error {
	if s.registry != nil {
		if err := s.registry.Register(t); err != nil {
			return fmt.Errorf("register tool: %w", err)
		}
	}
	s.registerTool(t)
	return nil
}
