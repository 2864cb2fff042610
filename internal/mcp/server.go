// Package mcp exposes the embed builder as Model Context Protocol tools.
package mcp

import (
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/geoembed/geoembed/internal/config"
	"github.com/geoembed/geoembed/internal/render"
)

// Server serves the geoembed tools over stdio.
type Server struct {
	cfg    config.GlobalConfig
	logger *slog.Logger
	mcp    *server.MCPServer
}

// NewServer registers the tools. cfg supplies the defaults for omitted
// width, height, toolbar and format arguments.
func NewServer(cfg config.GlobalConfig, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		mcp:    server.NewMCPServer("geoembed", version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool("build_embed",
		mcp.WithDescription("Build an iframe tag from a GeoGebra embed code, rewriting the width, height and toolbar settings in its URL."),
		mcp.WithString("snippet", mcp.Required(), mcp.Description("Embed code containing a src=\"...\" attribute")),
		mcp.WithString("width", mcp.Description("Width in pixels; a positive integer")),
		mcp.WithString("height", mcp.Description("Height in pixels; a positive integer")),
		mcp.WithBoolean("show_toolbar", mcp.Description("Force the menu bar and tool bar on")),
		mcp.WithString("format", mcp.Description("Output format: "+strings.Join(render.ValidFormats(), ", "))),
	), s.handleBuildEmbed)

	s.mcp.AddTool(mcp.NewTool("inspect_snippet",
		mcp.WithDescription("Show the source URL of an embed code and the settings encoded in its path."),
		mcp.WithString("snippet", mcp.Required(), mcp.Description("Embed code containing a src=\"...\" attribute")),
	), s.handleInspectSnippet)

	return s
}

// Serve blocks, serving requests on stdin/stdout.
func (s *Server) Serve() error {
	s.logger.Info("mcp server listening on stdio")
	return server.ServeStdio(s.mcp)
}
