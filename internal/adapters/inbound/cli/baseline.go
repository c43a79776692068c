package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/tui"
	"github.com/wtthornton/tappscheck/internal/domain"
)

func newBaselineCmd(g *globalOptions) *cobra.Command {
	var (
		update     bool
		reset      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "baseline [path]",
		Short: "Show or update performance baselines",
		Long:  "Show the processing-time baselines used to classify scan performance. --update folds a fresh scan into them; --reset restores the defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if update && reset {
				return fmt.Errorf("--update and --reset are mutually exclusive")
			}
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}

			svc := newServices(g.logger).baselines
			var b *domain.PerformanceBaselines
			switch {
			case reset:
				if err := svc.Reset(absPath); err != nil {
					return err
				}
				b = domain.DefaultBaselines()
			case update:
				b, err = svc.Update(cmd.Context(), absPath)
			default:
				b, err = svc.Show(absPath)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, b)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderBaselines(b))
			return nil
		},
	}

	cmd.Flags().BoolVar(&update, "update", false, "Scan the project and fold its timings into the baselines")
	cmd.Flags().BoolVar(&reset, "reset", false, "Remove stored baselines")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output baselines as JSON")
	return cmd
}
