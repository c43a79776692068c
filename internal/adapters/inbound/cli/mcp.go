package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/wtthornton/tappscheck/internal/adapters/inbound/mcp"
)

func newMCPCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the tappscheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globalOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tappscheck MCP server (stdio)",
		Long:  "Start the MCP server on stdio so AI coding assistants can run scans, check files, and read compliance history and trends.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg([]string{projectPath})
			if err != nil {
				return err
			}
			svc := newServices(g.logger)
			s := mcpadapter.NewServer(absPath, mcpadapter.Services{
				Compliance: svc.compliance,
				Check:      svc.check,
				Trends:     svc.trends,
				Validate:   svc.validate,
			}, version)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path (defaults to current working directory)")

	return cmd
}
