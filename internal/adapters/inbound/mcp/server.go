package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/wtthornton/tappscheck/internal/application"
)

// Services are the application services exposed as MCP tools.
type Services struct {
	Compliance *application.ComplianceService
	Check      *application.CheckService
	Trends     *application.TrendService
	Validate   *application.ValidateService
}

// NewServer creates an MCP server with all tappscheck tools and resources
// registered. projectPath is the root of the project to analyze.
func NewServer(projectPath string, svc Services, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tappscheck",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
