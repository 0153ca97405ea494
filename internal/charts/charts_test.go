package charts

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/quiz"
)

func TestBars_ScalesToLargest(t *testing.T) {
	out := Bars([]Bar{{Label: "a", Value: 10}, {Label: "b", Value: 5}, {Label: "c", Value: 0}}, 40, Plain())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	// width 40, label 1, value column 10, two spaces.
	barW := 40 - 1 - valueWidth - 2
	assert.Equal(t, barW, strings.Count(lines[0], fullBlock))
	assert.Equal(t, barW/2+barW%2, strings.Count(lines[1], fullBlock))
	assert.Zero(t, strings.Count(lines[2], fullBlock))
	assert.True(t, strings.HasSuffix(lines[1], " 5"))
}

func TestBars_WideLabels(t *testing.T) {
	out := Bars([]Bar{
		{Label: "Fiil çekimi", Value: 1},
		{Label: "日本語の文法", Value: 1},
		{Label: strings.Repeat("x", 40), Value: 1},
	}, 60, Plain())
	lines := strings.Split(out, "\n")

	// Every bar starts in the same display column.
	col := -1
	for _, l := range lines {
		prefix := l[:strings.Index(l, fullBlock)]
		w := runewidth.StringWidth(prefix)
		if col == -1 {
			col = w
		}
		assert.Equal(t, col, w, "line %q", l)
	}
	assert.Equal(t, maxLabelWidth+1, col)
}

func TestShare(t *testing.T) {
	out := Share([]Bar{{Label: "Verbs", Value: 30}, {Label: "Nouns", Value: 10}}, 40, Plain())
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "25%")
	assert.Empty(t, Share(nil, 40, Plain()))
}

func TestProgress(t *testing.T) {
	out := Progress([]Day{{Label: "2026-01-01", Done: 60, Target: 60}, {Label: "2026-01-02", Done: 15, Target: 60}}, 50, Plain())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], emptyBlock)
	assert.Contains(t, lines[1], "15/60")
}

func TestGrouped(t *testing.T) {
	out := Grouped([]Pair{{Label: "easy", Good: 4, Bad: 2}}, 40, Plain())
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "4 ok")
	assert.Contains(t, lines[1], "2 wrong")
	assert.Greater(t, strings.Count(lines[0], fullBlock), strings.Count(lines[1], fullBlock))
}

func TestTable(t *testing.T) {
	out := Table([]string{"Topic", "Rate"}, [][]string{{"Fiil", "30.00%"}, {"İsim", "9%"}}, map[int]bool{1: true})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Topic   Rate", lines[0])
	assert.Equal(t, "Fiil  30.00%", lines[2])
	assert.Equal(t, "İsim      9%", lines[3])
}

func TestDashboard(t *testing.T) {
	assert.Contains(t, Dashboard(analysis.Dashboard{Quote: "Keep going."}, 60, Plain()), "No test results")

	d := analysis.Dashboard{
		Tests: 2, Correct: 6, Wrong: 2,
		Days:       []analysis.DayProgress{{Date: "2026-01-01", Minutes: 60, Target: 60}},
		Tiers:      []analysis.TierStat{{Tier: quiz.Easy, Correct: 6, Wrong: 2}, {Tier: quiz.Hard}},
		TopicTimes: []analysis.TopicTime{{Topic: "Verbs", Minutes: 16}},
		Quote:      "Keep going.",
	}
	out := Dashboard(d, 60, Plain())
	assert.Contains(t, out, "2 tests, 8 answers, 75.0% correct")
	assert.Contains(t, out, "75% of 8")
	assert.NotContains(t, out, "hard")
	assert.Contains(t, out, "100%")
	assert.True(t, strings.HasSuffix(out, "Keep going."))
}

func TestAnalysisTable(t *testing.T) {
	out := AnalysisTable([]analysis.TopicAnalysis{
		{Topic: "Verbs", SuccessRate: 30, Difficulty: quiz.Easy, Weight: 0.875, Correct: 3, Wrong: 7},
	})
	assert.Contains(t, out, "30.00%")
	assert.Contains(t, out, "3/10")
	assert.Contains(t, out, "0.875")
}
