package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/cache"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/config"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/parser"
	"github.com/abdidvp/usedirective/internal/adapters/outbound/scanner"
	"github.com/abdidvp/usedirective/internal/application"
)

// services bundles what the tool handlers need.
type services struct {
	projectPath string
	config      *config.YAMLLoader
	lint        *application.LintService
	fix         *application.FixService
}

// NewServer creates an MCP server with the usedirective tools and resources
// registered. projectPath is the root directory of the project to lint.
func NewServer(projectPath string, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"usedirective",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	sc := scanner.New()
	par := parser.New()
	cfg := config.New()
	store := cache.New()
	git := gitinfo.New()

	svc := &services{
		projectPath: projectPath,
		config:      cfg,
		lint:        application.NewLintService(sc, par, cfg, store, git, logger),
		fix:         application.NewFixService(sc, par, cfg, store, git, logger),
	}

	registerTools(s, svc)
	registerResources(s, svc)

	return s
}
