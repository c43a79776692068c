package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/config"
	"github.com/wtthornton/tappscheck/internal/adapters/outbound/tui"
	"github.com/wtthornton/tappscheck/internal/application"
	"github.com/wtthornton/tappscheck/internal/domain/analytics"
	"github.com/wtthornton/tappscheck/internal/domain/scoring"
)

func newScanCmd(g *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		ciMode     bool
		minScore   float64
		badge      bool
		noHistory  bool
		workers    int
		daysAhead  int
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project and record its compliance score",
		Long:  "Evaluate every included file against the project's rules, score the run, append it to history, and report trends.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if daysAhead < 0 {
				return fmt.Errorf("--days must not be negative (got %d)", daysAhead)
			}
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}

			svc := newServices(g.logger).compliance
			report, err := svc.Run(cmd.Context(), absPath, application.RunOptions{
				Workers:   workers,
				NoHistory: noHistory,
				DaysAhead: &daysAhead,
			})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			switch {
			case jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			case badge:
				renderBadge(cmd, report.Run.Score)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if ciMode {
				threshold := minScore
				if !cmd.Flags().Changed("min") {
					cfg, err := config.New().Load(absPath)
					if err != nil {
						return err
					}
					threshold = cfg.MinScore
				}
				if report.Run.Score < threshold {
					return fmt.Errorf("score %.1f is below minimum %.1f", report.Run.Score, threshold)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the full report as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if the score is below --min")
	cmd.Flags().Float64Var(&minScore, "min", 0, "Minimum score for CI mode (defaults to min_score in .tappscheck.yaml)")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output a shields.io badge URL")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not append this run to history")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent file workers (defaults to the configured value)")
	cmd.Flags().IntVar(&daysAhead, "days", analytics.DefaultDaysAhead, "Forecast horizon for the trend prediction")

	return cmd
}

func renderBadge(cmd *cobra.Command, score float64) {
	url := fmt.Sprintf("https://img.shields.io/badge/tappscheck-%.0f%%2F100-%s", score, scoring.BadgeColor(score))
	fmt.Fprintln(cmd.OutOrStdout(), url)
}
