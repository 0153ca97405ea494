package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/session"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Generate and manage tests",
	Long:  "Generate and manage tests. Tests are taken in the interactive app (eduwise run).",
}

var testGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a test for a topic or a plan day",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		day, _ := cmd.Flags().GetInt("day")
		diffName, _ := cmd.Flags().GetString("difficulty")
		count, _ := cmd.Flags().GetInt("count")
		showAnswers, _ := cmd.Flags().GetBool("answers")

		if (topic == "") == (day == 0) {
			return fmt.Errorf("use exactly one of --topic or --day")
		}
		if count < 0 || count > 40 {
			return fmt.Errorf("--count must be between 1 and 40")
		}

		d, err := newDeps(cmd, depsOptions{llm: true})
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		var entry session.TestEntry
		if topic != "" {
			diff, err := quiz.ParseDifficulty(diffName)
			if err != nil {
				return err
			}
			entry, err = d.service.GenerateTopicTest(ctx, d.state, topic, diff, count)
			if err != nil {
				return err
			}
		} else {
			if _, err := d.service.LoadLatestPlan(ctx, d.state); err != nil {
				return fmt.Errorf("day tests need a plan: %w", err)
			}
			entry, err = d.service.GenerateDayTest(ctx, d.state, day)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created test %d: %s\n\n", entry.ID, entry.Label)
		printQuestions(out, entry.Questions, showAnswers)
		return nil
	},
}

var testListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		tests, err := d.service.ListTests(cmd.Context(), d.state)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(tests) == 0 {
			fmt.Fprintln(out, "No tests yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-9s  %9s  %s\n", "ID", "Created", "Source", "Questions", "Label")
		rule(out, 80)
		for _, t := range tests {
			fmt.Fprintf(out, "%-5d  %-16s  %-9s  %9d  %s\n",
				t.ID, formatTime(t.CreatedAt), t.Source, len(t.Questions), truncate(t.Label, 40))
		}
		return nil
	},
}

var testDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a generated test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := newDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.service.DeleteTest(cmd.Context(), d.state, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted test %d.\n", id)
		return nil
	},
}

func printQuestions(w io.Writer, qs []quiz.Question, showAnswers bool) {
	for i, q := range qs {
		fmt.Fprintf(w, "%d. %s\n", i+1, q.Text)
		for _, o := range q.Choices.Decorated() {
			fmt.Fprintf(w, "   %s\n", o)
		}
		if showAnswers {
			fmt.Fprintf(w, "   Answer: %s\n", q.Choices.Correct())
			if q.Explanation != "" {
				fmt.Fprintf(w, "   %s\n", q.Explanation)
			}
		}
		fmt.Fprintln(w)
	}
}

func init() {
	f := testGenerateCmd.Flags()
	f.StringP("topic", "t", "", "Topic to test")
	f.Int("day", 0, "Day of the newest plan to test")
	f.String("difficulty", string(quiz.Medium), "Tier for topic tests: easy, medium or hard")
	f.IntP("count", "n", 0, "Number of questions for topic tests (default from config)")
	f.Bool("answers", false, "Print the correct answers")

	testCmd.AddCommand(testGenerateCmd)
	testCmd.AddCommand(testListCmd)
	testCmd.AddCommand(testDeleteCmd)
}
