package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const configURI = "usedirective://config"

// registerResources registers the usedirective MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *services) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective .usedirective.yaml settings for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(svc),
	)
}

func handleConfigResource(svc *services) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := svc.config.Load(svc.projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
