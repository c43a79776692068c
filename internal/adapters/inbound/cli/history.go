package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/tui"
	"github.com/wtthornton/tappscheck/internal/domain/analytics"
)

func newHistoryCmd(g *globalOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show recorded compliance runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}
			report, err := newServices(g.logger).trends.History(absPath)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	return cmd
}

func newTrendsCmd(g *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		daysAhead  int
	)

	cmd := &cobra.Command{
		Use:   "trends [path]",
		Short: "Analyze compliance trends across recorded runs",
		Long:  "Summarize score and violation statistics, detect outliers, forecast the score, and assess risk from stored history.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if daysAhead < 0 {
				return fmt.Errorf("--days must not be negative (got %d)", daysAhead)
			}
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}

			svc := newServices(g.logger).trends
			h, err := svc.History(absPath)
			if err != nil {
				return err
			}
			report := analytics.Analyze(h.Entries, analytics.Horizon(daysAhead))

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			var scores []float64
			for _, e := range h.Entries {
				scores = append(scores, e.ComplianceScore)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTrends(&report, scores))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the analysis as JSON")
	cmd.Flags().IntVar(&daysAhead, "days", analytics.DefaultDaysAhead, "Forecast horizon in runs")
	return cmd
}
