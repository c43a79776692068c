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

const (
	historyURI = "tappscheck://history"
	trendsURI  = "tappscheck://trends"
)

// registerResources registers all tappscheck MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, svc Services) {
	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Compliance History",
			mcplib.WithResourceDescription("Recorded compliance runs, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath, svc.Trends),
	)

	s.AddResource(
		mcplib.NewResource(
			trendsURI,
			"Compliance Trends",
			mcplib.WithResourceDescription("Statistical analysis of recorded runs with a 7-run forecast"),
			mcplib.WithMIMEType("application/json"),
		),
		handleTrendsResource(projectPath, svc.Trends),
	)
}

func handleHistoryResource(projectPath string, svc *application.TrendService) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := svc.History(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		return jsonContents(request.Params.URI, report)
	}
}

func handleTrendsResource(projectPath string, svc *application.TrendService) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := svc.Trends(projectPath, analytics.DefaultDaysAhead)
		if err != nil {
			return nil, fmt.Errorf("analyzing trends: %w", err)
		}
		return jsonContents(request.Params.URI, report)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
