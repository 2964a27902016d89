// Package server exposes the running manager's layout and bindings as MCP
// tools.
package server

import (
	"fmt"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/mj1618/ifwm/internal/config"
	"github.com/mj1618/ifwm/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	// StatePath is the layout snapshot written by the manager.
	StatePath string
	// ConfigPath is reported alongside the bindings; Settings is what was
	// loaded from it.
	ConfigPath string
	Settings   config.Config
}

// Server wraps the MCP server with the layout cache.
type Server struct {
	cfg   Config
	cache *LayoutCache
	log   zerolog.Logger
	mcp   *mcpserver.MCPServer
}

// New creates an MCP server with the ifwm tools registered.
func New(cfg Config, log zerolog.Logger) *Server {
	s := &Server{
		cfg:   cfg,
		cache: NewLayoutCache(cfg.StatePath, cfg.CacheTTL),
		log:   log,
	}
	s.mcp = mcpserver.NewMCPServer("ifwm", version.Version)
	s.registerTools()
	return s
}

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve() error {
	s.log.Info().Str("transport", s.cfg.Transport).Str("state", s.cfg.StatePath).Msg("mcp server starting")
	switch s.cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}
