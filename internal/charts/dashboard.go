package charts

import (
	"fmt"
	"strings"

	"github.com/eduwise/eduwise/internal/analysis"
)

// Dashboard renders every dashboard chart under a heading each.
func Dashboard(d analysis.Dashboard, width int, p Palette) string {
	if d.Tests == 0 {
		return "No test results yet. Take a test to see your progress.\n\n" + d.Quote
	}

	var sections []string
	add := func(title, body string) {
		if body == "" {
			return
		}
		sections = append(sections, title+"\n"+body)
	}

	total := d.Correct + d.Wrong
	rate := 0.0
	if total > 0 {
		rate = float64(d.Correct) / float64(total) * 100
	}
	sections = append(sections, fmt.Sprintf("%d tests, %d answers, %.1f%% correct", d.Tests, total, rate))

	days := make([]Day, len(d.Days))
	for i, dp := range d.Days {
		days[i] = Day{Label: dp.Date, Done: dp.Minutes, Target: dp.Target}
	}
	add("Daily study minutes", Progress(days, width, p))

	add("Answers", Grouped([]Pair{{Label: "All tests", Good: d.Correct, Bad: d.Wrong}}, width, p))

	var tiers []Bar
	for _, t := range d.Tiers {
		if t.Correct+t.Wrong == 0 {
			continue
		}
		tiers = append(tiers, Bar{
			Label: string(t.Tier),
			Value: t.SuccessRate(),
			Text:  fmt.Sprintf("%.0f%% of %d", t.SuccessRate(), t.Correct+t.Wrong),
		})
	}
	add("Success by difficulty", Bars(tiers, width, p))

	topics := make([]Bar, len(d.TopicTimes))
	for i, tt := range d.TopicTimes {
		topics[i] = Bar{Label: tt.Topic, Value: float64(tt.Minutes)}
	}
	add("Time per topic", Share(topics, width, p))

	if d.Quote != "" {
		sections = append(sections, d.Quote)
	}
	return strings.Join(sections, "\n\n")
}

// AnalysisTable renders the topic analysis, weakest topic first.
func AnalysisTable(a []analysis.TopicAnalysis) string {
	rows := make([][]string, len(a))
	for i, t := range a {
		rows[i] = []string{
			t.Topic,
			fmt.Sprintf("%.2f%%", t.SuccessRate),
			fmt.Sprintf("%d/%d", t.Correct, t.Correct+t.Wrong),
			string(t.Difficulty),
			fmt.Sprintf("%.3f", t.Weight),
		}
	}
	return Table(
		[]string{"Topic", "Success", "Answers", "Next tier", "Weight"},
		rows,
		map[int]bool{1: true, 2: true, 4: true},
	)
}
