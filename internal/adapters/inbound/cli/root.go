package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wtthornton/tappscheck/internal/adapters/outbound/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions carries the persistent flags and the logger built from them.
type globalOptions struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "tappscheck",
		Short: "Score a repository against its coding standards",
		Long: "tappscheck evaluates every file in a project against the rules bound to its standards, " +
			"scores the result, and tracks compliance over time.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(cmd.ErrOrStderr(), logging.Config{
				Level:   g.logLevel,
				Format:  g.logFormat,
				Service: "tappscheck",
			})
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "Log format (text, json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd(g))
	cmd.AddCommand(newCheckCmd(g))
	cmd.AddCommand(newHistoryCmd(g))
	cmd.AddCommand(newTrendsCmd(g))
	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newBaselineCmd(g))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tappscheck version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tappscheck %s (%s)\n", version, commit)
			return nil
		},
	}
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI and prints any error to stderr.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
