package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eduwise/eduwise/internal/pdfexport"
	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/session"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create and browse learning plans",
}

var planCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a learning plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		levelName, _ := cmd.Flags().GetString("level")
		minutes, _ := cmd.Flags().GetInt("minutes")
		start, _ := cmd.Flags().GetString("start")
		days, _ := cmd.Flags().GetInt("days")

		level, err := planner.ParseLevel(levelName)
		if err != nil {
			return err
		}
		req := planner.PlanRequest{
			Topic:        topic,
			Level:        level,
			DailyMinutes: minutes,
			DurationDays: days,
		}
		if start != "" {
			t, err := time.Parse(planner.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", start)
			}
			req.StartDate = t
		}

		d, err := newDeps(cmd, depsOptions{llm: true})
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Fprintf(cmd.ErrOrStderr(), "Planning %q...\n", strings.TrimSpace(topic))
		entry, err := d.service.CreatePlan(cmd.Context(), d.state, req)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created plan %d.\n\n", entry.ID)
		printPlan(out, entry)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		plans, err := d.service.ListPlans(cmd.Context(), d.state)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(plans) == 0 {
			fmt.Fprintln(out, "No plans yet. Create one with: eduwise plan create --topic <subject>")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-32s  %-12s  %5s  %s\n",
			"ID", "Created", "Topic", "Level", "Days", "Min/day")
		rule(out, 86)
		for _, p := range plans {
			req := p.Plan.Request
			fmt.Fprintf(out, "%-5d  %-16s  %-32s  %-12s  %5d  %d\n",
				p.ID, formatTime(p.CreatedAt), truncate(req.Topic, 32), req.Level,
				len(p.Plan.Schedule), req.DailyMinutes)
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a plan (the newest when no ID is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		entry, err := openPlan(cmd, d, args)
		if err != nil {
			return err
		}
		printPlan(cmd.OutOrStdout(), entry)
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a plan",
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

		if err := d.service.DeletePlan(cmd.Context(), d.state, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %d.\n", id)
		return nil
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a plan to PDF",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		entry, err := openPlan(cmd, d, args)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			path = pdfexport.FileName(entry.Plan)
		} else if strings.HasSuffix(path, string(filepath.Separator)) {
			path = filepath.Join(path, pdfexport.FileName(entry.Plan))
		}
		if err := pdfexport.WriteFile(path, entry.Plan, pdfexport.Options{FontPath: d.cfg.FontPath}); err != nil {
			return err
		}
		d.logger.Info("plan exported", "plan_id", entry.ID, "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
		return nil
	},
}

// openPlan activates the plan named by args[0], or the newest plan.
func openPlan(cmd *cobra.Command, d *deps, args []string) (session.PlanEntry, error) {
	if len(args) == 0 {
		entry, err := d.service.LoadLatestPlan(cmd.Context(), d.state)
		if err != nil {
			return session.PlanEntry{}, fmt.Errorf("no plan to show: %w", err)
		}
		return entry, nil
	}
	id, err := parseID(args[0])
	if err != nil {
		return session.PlanEntry{}, err
	}
	return d.service.OpenPlan(cmd.Context(), d.state, id)
}

func printPlan(w io.Writer, entry session.PlanEntry) {
	p := entry.Plan
	req := p.Request
	fmt.Fprintf(w, "Plan %d: %s\n", entry.ID, req.Topic)
	fmt.Fprintf(w, "Level %s · %d min/day · starts %s · %d days\n\n",
		req.Level, req.DailyMinutes, req.StartDate.Format(planner.DateLayout), len(p.Schedule))

	fmt.Fprintln(w, "Learning path")
	rule(w, 60)
	prereqs := make(map[string][]string, len(p.Path.Links))
	for _, l := range p.Path.Links {
		prereqs[l.Topic] = l.Prerequisites
	}
	for i, t := range p.Path.Topics {
		fmt.Fprintf(w, "%2d. %s\n", i+1, t.Topic)
		if len(t.Subtopics) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(t.Subtopics, ", "))
		}
		if pre := prereqs[t.Topic]; len(pre) > 0 {
			fmt.Fprintf(w, "    after: %s\n", strings.Join(pre, ", "))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Schedule")
	rule(w, 60)
	for _, day := range p.Schedule {
		topic := day.Topic
		if day.Subtopic != "" {
			topic += " / " + day.Subtopic
		}
		var tags []string
		if day.Review {
			tags = append(tags, "review")
		}
		if day.Practice {
			tags = append(tags, "practice")
		}
		tag := ""
		if len(tags) > 0 {
			tag = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintf(w, "Day %-3d %s  %s%s\n", day.Day, day.Date, topic, tag)
		if day.Activity != "" {
			fmt.Fprintf(w, "        %s\n", day.Activity)
		}
		if day.Task != "" {
			fmt.Fprintf(w, "        Task: %s\n", day.Task)
		}
	}
}

func init() {
	f := planCreateCmd.Flags()
	f.StringP("topic", "t", "", "Subject to learn")
	f.StringP("level", "l", string(planner.Intermediate), "Starting level: Beginner, Intermediate or Advanced")
	f.IntP("minutes", "m", 60, "Study minutes per day (15-240, in steps of 15)")
	f.String("start", "", "Start date YYYY-MM-DD (default today)")
	f.IntP("days", "d", planner.DefaultDurationDays, "Plan length in days")
	_ = planCreateCmd.MarkFlagRequired("topic")

	planExportCmd.Flags().StringP("out", "o", "", "Output file or directory (default ./learning-plan-<topic>.pdf)")

	planCmd.AddCommand(planCreateCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDeleteCmd)
	planCmd.AddCommand(planExportCmd)
}
