package cli

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/geoembed/geoembed/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the embed builder as MCP tools over stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing two tools:

  build_embed      build an iframe tag from an embed code
  inspect_snippet  show the source URL and the settings in its path

Diagnostics go to stderr so they never mix with the protocol stream.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return mcpserver.NewServer(cfg, version, newLogger(cfg)).Serve()
		},
	}
}
