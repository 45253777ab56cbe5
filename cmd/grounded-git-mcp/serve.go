// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/logging"
	groundedmcp "github.com/adina8244/grounded-git-mcp/internal/mcp"
	"github.com/adina8244/grounded-git-mcp/internal/output"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var logFile string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run grounded-git-mcp as a Model Context Protocol (MCP) server over stdio.

This exposes the inspection tools and the propose/execute approval flow to
any MCP-capable agent environment (Claude Code, Cursor, Windsurf, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "grounded-git": {
        "command": "grounded-git-mcp",
        "args": ["serve"]
      }
    }
  }

Stdout carries the protocol, so logs go to --log-file when set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logging.Configure(logLevel)
			if logFile != "" {
				closer, err := logging.SetupFile(logFile)
				if err != nil {
					return output.NewSystemErrorWithCause("opening log file", err)
				}
				defer closer.Close()
			}

			server := groundedmcp.NewServer(buildVersion())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (stdout is the MCP transport)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}
