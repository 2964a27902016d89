package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/ifwm/internal/logging"
	"github.com/mj1618/ifwm/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the window manager's layout",
	Long: `Start a Model Context Protocol (MCP) server with two read-only tools:
layout, which reports the running manager's containers and tabs, and
bindings, which lists the configured key bindings.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport

Examples:
  ifwm serve
  ifwm serve --transport streamable-http --port 8080
  ifwm serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Layout cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	// stdout carries the protocol, so logs go to the configured file or stderr.
	log, closer, err := logging.New(logging.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	srv := server.New(server.Config{
		Transport:  transport,
		Port:       port,
		CacheTTL:   time.Duration(cacheTTLMs) * time.Millisecond,
		StatePath:  statePath(cfg),
		ConfigPath: path,
		Settings:   cfg,
	}, log)
	return srv.Serve()
}
