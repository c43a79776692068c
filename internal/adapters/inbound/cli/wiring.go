package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/baseline"
	"github.com/wtthornton/tappscheck/internal/adapters/outbound/config"
	"github.com/wtthornton/tappscheck/internal/adapters/outbound/gitinfo"
	"github.com/wtthornton/tappscheck/internal/adapters/outbound/history"
	"github.com/wtthornton/tappscheck/internal/adapters/outbound/scanner"
	"github.com/wtthornton/tappscheck/internal/adapters/outbound/standards"
	"github.com/wtthornton/tappscheck/internal/application"
)

// services is the composition root shared by the commands and the MCP server.
type services struct {
	compliance *application.ComplianceService
	check      *application.CheckService
	trends     *application.TrendService
	validate   *application.ValidateService
	baselines  *application.BaselineService
}

func newServices(logger *slog.Logger) *services {
	cfg := config.New()
	std := standards.New()
	src := scanner.New(logger)
	hist := history.NewFactory(logger)
	bl := baseline.New()

	git := gitinfo.New()

	compliance := application.NewComplianceService(cfg, std, src, hist, bl, git, logger)
	return &services{
		compliance: compliance,
		check:      application.NewCheckService(cfg, std, src, logger),
		trends:     application.NewTrendService(cfg, hist),
		validate:   application.NewValidateService(cfg, std, hist, bl, git),
		baselines:  application.NewBaselineService(compliance, bl),
	}
}

// projectArg resolves the optional [path] argument to an absolute path.
func projectArg(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
