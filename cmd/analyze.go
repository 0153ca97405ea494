package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/charts"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show topic weights and next difficulty from your results",
	RunE: func(cmd *cobra.Command, args []string) error {
		minAnswered, _ := cmd.Flags().GetInt("min")
		generate, _ := cmd.Flags().GetInt("generate")
		showAnswers, _ := cmd.Flags().GetBool("answers")
		if minAnswered < 0 || generate < 0 {
			return fmt.Errorf("--min and --generate must not be negative")
		}

		d, err := newDeps(cmd, depsOptions{llm: generate > 0, minAnswered: minAnswered})
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		a, err := d.service.AnalyzeTopics(ctx, d.state)
		if err != nil && !errors.Is(err, analysis.ErrNoWeights) {
			return err
		}
		if len(a) == 0 {
			fmt.Fprintf(out, "No topic has %d answered questions yet. Take more tests first.\n",
				d.service.Settings().MinAnswered)
			return nil
		}
		fmt.Fprintln(out, charts.AnalysisTable(a))
		if err != nil {
			fmt.Fprintln(out, "\nEvery topic is mastered. Nothing to practise.")
			return nil
		}
		if generate == 0 {
			return nil
		}

		entry, err := d.service.GenerateWeightedTest(ctx, d.state, generate)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nCreated test %d: %s\n", entry.ID, entry.Label)
		if len(entry.FailedTopics) > 0 {
			fmt.Fprintf(out, "Could not generate questions for: %v\n", entry.FailedTopics)
		}
		fmt.Fprintln(out)
		printQuestions(out, entry.Questions, showAnswers)
		return nil
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.Int("min", 0, "Answered questions a topic needs to be included (default from config)")
	f.Int("generate", 0, "Generate a weighted test with this many questions")
	f.Bool("answers", false, "Print the correct answers of the generated test")
}
