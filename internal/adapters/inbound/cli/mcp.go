package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/abdidvp/usedirective/internal/adapters/inbound/mcp"
)

func newMCPCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the usedirective MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(root))
	return cmd
}

func newMCPServeCmd(root *rootOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start usedirective MCP server (stdio)",
		Long:  "Start the usedirective MCP server using stdio transport. This lets AI coding assistants check and fix directive prologues in the project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			s := mcpadapter.NewServer(projectPath, root.logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
