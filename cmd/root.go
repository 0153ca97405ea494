package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eduwise",
	Short: "AI learning plans and quizzes in the terminal",
	Long: "EduWise plans a day-by-day study schedule for any subject, writes multiple-choice\n" +
		"tests for it and steers new tests toward the topics you keep getting wrong.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides EDUWISE_DB)")
	pf.String("user", "", "User whose plans and results to use (overrides EDUWISE_USER)")
	pf.String("config", "", "Path to config.toml (default $XDG_CONFIG_HOME/eduwise/config.toml)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.BoolP("verbose", "v", false, "Also write log lines to stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
