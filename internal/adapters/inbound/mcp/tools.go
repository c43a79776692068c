package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wtthornton/tappscheck/internal/application"
	"github.com/wtthornton/tappscheck/internal/domain/analytics"
)

// registerTools registers all tappscheck MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, svc Services) {
	// 1. compliance_scan
	s.AddTool(
		mcplib.NewTool("compliance_scan",
			mcplib.WithDescription("Scan the project, score it against its standards, and return the full report with trends as JSON"),
			mcplib.WithBoolean("no_history", mcplib.Description("Do not append this run to history")),
			mcplib.WithNumber("workers", mcplib.Description("Concurrent file workers (defaults to the configured value)")),
			mcplib.WithNumber("days_ahead", mcplib.Description("Forecast horizon for the trend prediction (default 7)")),
		),
		handleScan(projectPath, svc.Compliance),
	)

	// 2. compliance_check_file
	s.AddTool(
		mcplib.NewTool("compliance_check_file",
			mcplib.WithDescription("Evaluate a single file with the project rules and return its violations and score"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file relative to the project root"),
			),
		),
		handleCheckFile(projectPath, svc.Check),
	)

	// 3. compliance_history
	s.AddTool(
		mcplib.NewTool("compliance_history",
			mcplib.WithDescription("Return the recorded compliance runs with integrity statistics"),
		),
		handleHistory(projectPath, svc.Trends),
	)

	// 4. compliance_trends
	s.AddTool(
		mcplib.NewTool("compliance_trends",
			mcplib.WithDescription("Analyze recorded runs: score statistics, outliers, prediction, and risk"),
			mcplib.WithNumber("days_ahead", mcplib.Description("Forecast horizon (default 7)")),
		),
		handleTrends(projectPath, svc.Trends),
	)

	// 5. compliance_validate
	s.AddTool(
		mcplib.NewTool("compliance_validate",
			mcplib.WithDescription("Check configuration, rule compilation, history integrity, and baselines without scanning"),
		),
		handleValidate(projectPath, svc.Validate),
	)
}

func handleScan(projectPath string, svc *application.ComplianceService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		days := request.GetInt("days_ahead", analytics.DefaultDaysAhead)
		opts := application.RunOptions{
			NoHistory: request.GetBool("no_history", false),
			Workers:   request.GetInt("workers", 0),
			DaysAhead: &days,
		}
		if opts.Workers < 0 || days < 0 {
			return errorResult("workers and days_ahead must not be negative"), nil
		}
		report, err := svc.Run(ctx, projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCheckFile(projectPath string, svc *application.CheckService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		report, err := svc.CheckFile(ctx, projectPath, file)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleHistory(projectPath string, svc *application.TrendService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := svc.History(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleTrends(projectPath string, svc *application.TrendService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		days := request.GetInt("days_ahead", analytics.DefaultDaysAhead)
		if days < 0 {
			return errorResult("days_ahead must not be negative"), nil
		}
		report, err := svc.Trends(projectPath, days)
		if err != nil {
			return errorResult(fmt.Sprintf("trend analysis failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleValidate(projectPath string, svc *application.ValidateService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(svc.Validate(projectPath))
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
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
