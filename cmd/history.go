package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eduwise/eduwise/internal/quiz"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your plans and test results",
	RunE: func(cmd *cobra.Command, args []string) error {
		deleteID, _ := cmd.Flags().GetInt64("delete-result")
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := newDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if deleteID != 0 {
			if err := d.service.DeleteResult(ctx, d.state, deleteID); err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted result %d.\n", deleteID)
			return nil
		}

		h, err := d.service.History(ctx, d.state)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Plans (%d)\n", len(h.Plans))
		rule(out, 72)
		for _, p := range h.Plans {
			fmt.Fprintf(out, "%-5d  %-16s  %s (%s, %d days)\n",
				p.ID, formatTime(p.CreatedAt), p.Plan.Request.Topic, p.Plan.Request.Level, len(p.Plan.Schedule))
		}

		fmt.Fprintf(out, "\nResults (%d)\n", len(h.Results))
		rule(out, 72)
		fmt.Fprintf(out, "%-5s  %-16s  %9s  %7s  %s\n", "ID", "Taken", "Questions", "Score", "Topics")
		for i, r := range h.Results {
			if limit > 0 && i >= limit {
				fmt.Fprintf(out, "... %d more\n", len(h.Results)-limit)
				break
			}
			fmt.Fprintf(out, "%-5d  %-16s  %9d  %6.0f%%  %s\n",
				r.ID, formatTime(r.CreatedAt), len(r.Questions), score(r), truncate(resultTopics(r), 36))
		}
		return nil
	},
}

// score is the share of all questions answered correctly.
func score(r quiz.TestRecord) float64 {
	if len(r.Questions) == 0 {
		return 0
	}
	return float64(r.Correct) / float64(len(r.Questions)) * 100
}

func resultTopics(r quiz.TestRecord) string {
	seen := make(map[string]bool)
	var names []string
	for _, q := range r.Questions {
		if q.Topic == "" || seen[q.Topic] {
			continue
		}
		seen[q.Topic] = true
		names = append(names, q.Topic)
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func init() {
	historyCmd.Flags().Int64("delete-result", 0, "Delete the result with this ID")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most this many results")
}
