package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/tui"
)

func newCheckCmd(g *globalOptions) *cobra.Command {
	var (
		projectPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check a single file against the project rules",
		Long:  "Evaluate one file with the project's rules and show its violations. History is not recorded.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			file := args[0]
			if !filepath.IsAbs(file) {
				// Relative arguments are taken from the working directory,
				// like any other shell path.
				if file, err = filepath.Abs(file); err != nil {
					return fmt.Errorf("resolving file: %w", err)
				}
			}

			report, err := newServices(g.logger).check.CheckFile(cmd.Context(), absPath, file)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCheck(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root the file belongs to")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")

	return cmd
}
