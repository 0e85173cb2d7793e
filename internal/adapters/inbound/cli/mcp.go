package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/groomroom/groomroom/internal/adapters/inbound/mcp"
)

func newMCPCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the GroomRoom MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globalFlags) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start GroomRoom MCP server (stdio)",
		Long:  "Start the GroomRoom MCP server using stdio transport. This lets AI assistants analyse tickets, generate test scenarios and read the vocabulary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := g.loader()
			cfg, err := loader.Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			svc := mcpadapter.NewServices(absPath, loader, enricher(cfg))
			s := mcpadapter.NewGroomRoomMCPServer(svc, version)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Directory holding .groomroom.yaml (defaults to current working directory)")

	return cmd
}
