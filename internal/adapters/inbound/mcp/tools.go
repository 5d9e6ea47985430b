package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/usedirective/internal/application"
	"github.com/abdidvp/usedirective/internal/domain"
)

// registerTools registers the usedirective MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *services) {
	// 1. usedirective_check
	s.AddTool(
		mcplib.NewTool("usedirective_check",
			mcplib.WithDescription("Report files whose directive prologue is missing the required directive or has the wrong blank-line spacing. Pass content to check unsaved source instead of files on disk."),
			mcplib.WithString("path", mcplib.Description("File or directory relative to the project root (default: whole project)")),
			mcplib.WithString("content", mcplib.Description("Source text to check instead of reading files")),
			mcplib.WithString("filename", mcplib.Description("File name used for content, e.g. Button.tsx; decides the grammar and extension filtering")),
			mcplib.WithBoolean("changed", mcplib.Description("Only check files git reports as changed")),
		),
		handleCheck(svc),
	)

	// 2. usedirective_fix
	s.AddTool(
		mcplib.NewTool("usedirective_fix",
			mcplib.WithDescription("Apply directive and blank-line fixes. With content, returns the fixed text without touching disk."),
			mcplib.WithString("path", mcplib.Description("File or directory relative to the project root (default: whole project)")),
			mcplib.WithString("content", mcplib.Description("Source text to fix instead of files on disk")),
			mcplib.WithString("filename", mcplib.Description("File name used for content")),
			mcplib.WithBoolean("dry_run", mcplib.Description("Compute fixes without writing files")),
		),
		handleFix(svc),
	)
}

func handleCheck(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		if content, ok := args["content"].(string); ok {
			cfg, err := svc.config.Load(svc.projectPath)
			if err != nil {
				return errorResult(fmt.Sprintf("loading config: %v", err)), nil
			}
			filename, _ := args["filename"].(string)
			violations, err := svc.lint.LintSource(filename, []byte(content), cfg)
			if err != nil {
				return errorResult(fmt.Sprintf("check failed: %v", err)), nil
			}
			return jsonResult(domain.FileResult{Path: displayName(filename), Violations: violations})
		}

		path, err := svc.resolve(args)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		changed, _ := args["changed"].(bool)
		opts := application.LintOptions{RunOptions: application.RunOptions{Changed: changed}}
		report, err := svc.lint.LintProject(ctx, path, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleFix(svc *services) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		if content, ok := args["content"].(string); ok {
			cfg, err := svc.config.Load(svc.projectPath)
			if err != nil {
				return errorResult(fmt.Sprintf("loading config: %v", err)), nil
			}
			filename, _ := args["filename"].(string)
			res, err := svc.fix.FixSource(filename, []byte(content), cfg)
			if err != nil {
				return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
			}
			return jsonResult(sourceFixResult{
				Path:      displayName(filename),
				Text:      res.Text,
				Applied:   res.Applied,
				Converged: res.Converged,
				Remaining: res.Remaining,
			})
		}

		path, err := svc.resolve(args)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		dryRun, _ := args["dry_run"].(bool)
		report, err := svc.fix.FixProject(ctx, path, application.FixOptions{DryRun: dryRun})
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

type sourceFixResult struct {
	Path      string             `json:"path"`
	Text      string             `json:"text"`
	Applied   int                `json:"applied"`
	Converged bool               `json:"converged"`
	Remaining []domain.Violation `json:"remaining,omitempty"`
}

// resolve returns the requested path joined to the project root. Paths that
// leave the project root are rejected.
func (svc *services) resolve(args map[string]any) (string, error) {
	root, err := filepath.Abs(svc.projectPath)
	if err != nil {
		return "", err
	}
	p, _ := args["path"].(string)
	if p == "" {
		return root, nil
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	p = filepath.Clean(p)

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the project", args["path"])
	}
	return p, nil
}

func displayName(filename string) string {
	if filename == "" {
		return domain.NoPath
	}
	return filename
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
