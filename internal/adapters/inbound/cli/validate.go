package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/tui"
	"github.com/wtthornton/tappscheck/internal/domain"
)

func newValidateCmd(g *globalOptions) *cobra.Command {
	var (
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Check configuration, rules, and stored state without scanning",
		Long:  "Verify .tappscheck.yaml, compile the rules against the available standards, and check the integrity of history and baselines.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := projectArg(args)
			if err != nil {
				return err
			}

			report := newServices(g.logger).validate.Validate(absPath)

			if jsonOutput {
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderValidation(report))
			}

			switch report.Status {
			case domain.StatusFail:
				return fmt.Errorf("validation failed")
			case domain.StatusWarn:
				if strict {
					return fmt.Errorf("validation failed (strict): warnings present")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings")
	return cmd
}
