// Package insights shows the weak-topic analysis and starts weighted
// practice tests from it.
package insights

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/charts"
	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/screens/testrun"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

type analyzedMsg struct {
	Analysis []analysis.TopicAnalysis
	Err      error
}

type weightedReadyMsg struct {
	Failed []string
	Err    error
}

// InsightsScreen lists topics weakest first and offers a weighted test.
type InsightsScreen struct {
	env      *screen.Env
	analysis []analysis.TopicAnalysis
	loaded   bool
	noWeight bool
	busy     bool
	note     string
	errMsg   string
}

var _ screen.Screen = (*InsightsScreen)(nil)
var _ screen.KeyHintProvider = (*InsightsScreen)(nil)
var _ screen.EscapeCapturer = (*InsightsScreen)(nil)

// New creates an InsightsScreen.
func New(env *screen.Env) *InsightsScreen {
	return &InsightsScreen{env: env}
}

func (s *InsightsScreen) Init() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		a, err := env.Service.AnalyzeTopics(env.Context(), env.State)
		return analyzedMsg{Analysis: a, Err: err}
	}
}

func (s *InsightsScreen) Title() string {
	return "Weak topics"
}

func (s *InsightsScreen) CapturesEscape() bool {
	return s.busy
}

func (s *InsightsScreen) KeyHints() []layout.KeyHint {
	if s.canPractice() {
		return []layout.KeyHint{
			{Key: "P", Description: "Practice weak topics"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *InsightsScreen) canPractice() bool {
	return s.loaded && !s.noWeight && len(s.analysis) > 0 && !s.busy
}

func (s *InsightsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analyzedMsg:
		s.loaded = true
		s.analysis = msg.Analysis
		switch {
		case errors.Is(msg.Err, analysis.ErrNoWeights):
			s.noWeight = true
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case weightedReadyMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.note = ""
		if len(msg.Failed) > 0 {
			s.note = "Last practice test skipped: " + strings.Join(msg.Failed, ", ")
		}
		run := testrun.New(s.env)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: run} }

	case tea.KeyPressMsg:
		switch msg.String() {
		case "p", "P", "enter":
			if !s.canPractice() {
				return s, nil
			}
			return s, s.practice()
		}
	}
	return s, nil
}

func (s *InsightsScreen) practice() tea.Cmd {
	s.busy = true
	s.errMsg = ""
	env := s.env
	n := env.Service.Settings().WeightedQuestionCount
	return func() tea.Msg {
		entry, err := env.Service.GenerateWeightedTest(env.Context(), env.State, n)
		return weightedReadyMsg{Failed: entry.FailedTopics, Err: err}
	}
}

func (s *InsightsScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Message(width, "Analyzing results...", theme.Hint)
	}

	var b strings.Builder
	switch {
	case len(s.analysis) == 0 && s.errMsg == "":
		return layout.Message(width, "No results yet. Take a test first.", theme.Hint)
	case len(s.analysis) > 0:
		b.WriteString(theme.Body.Render(charts.AnalysisTable(s.analysis)))
		b.WriteString("\n\n")
	}

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render(fmt.Sprintf(
			"Writing %d questions across your weakest topics...", s.env.Service.Settings().WeightedQuestionCount)))
	case s.noWeight:
		b.WriteString(theme.Correct.Render("Every topic is mastered. Nothing to practice."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Width(width - 4).Render(s.errMsg))
	default:
		b.WriteString(theme.Hint.Render("Topics are drawn in proportion to their weight. Press P to practice."))
	}
	if s.note != "" {
		b.WriteString("\n" + theme.Warning.Render(s.note))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
