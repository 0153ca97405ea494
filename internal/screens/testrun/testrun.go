package testrun

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/ui/components"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseConfirm
	phaseSubmitting
	phaseResults
)

type submittedMsg struct {
	Record quiz.TestRecord
	Err    error
}

// TestRunScreen walks through the active question batch, submits it and
// then reviews each question with its explanation.
type TestRunScreen struct {
	env     *screen.Env
	label   string
	phase   phase
	index   int
	choices components.Choices
	result  *quiz.TestRecord
	errMsg  string
}

var _ screen.Screen = (*TestRunScreen)(nil)
var _ screen.KeyHintProvider = (*TestRunScreen)(nil)
var _ screen.EscapeCapturer = (*TestRunScreen)(nil)

// New creates a TestRunScreen over env's active batch.
func New(env *screen.Env) *TestRunScreen {
	s := &TestRunScreen{env: env, label: env.State.ActiveLabel}
	s.load()
	return s
}

func (s *TestRunScreen) total() int {
	if s.phase == phaseResults {
		return len(s.result.Questions)
	}
	return len(s.env.State.ActiveBatch)
}

// load points the selector at question s.index.
func (s *TestRunScreen) load() {
	if s.phase == phaseResults {
		aq := s.result.Questions[s.index]
		s.choices = components.NewChoices(aq.Question, aq.UserAnswer)
		s.choices.Review = true
		return
	}
	batch := s.env.State.ActiveBatch
	if len(batch) == 0 {
		return
	}
	s.choices = components.NewChoices(batch[s.index], s.env.State.Answers[s.index])
}

func (s *TestRunScreen) move(delta int) {
	next := s.index + delta
	if next < 0 || next >= s.total() {
		return
	}
	s.index = next
	s.load()
}

func (s *TestRunScreen) Init() tea.Cmd {
	return nil
}

func (s *TestRunScreen) Title() string {
	if s.label != "" {
		return s.label
	}
	return "Test"
}

func (s *TestRunScreen) CapturesEscape() bool {
	return s.phase == phaseConfirm || s.phase == phaseSubmitting
}

func (s *TestRunScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep answering"},
		}
	case phaseResults:
		return []layout.KeyHint{
			{Key: "←→", Description: "Review"},
			{Key: "H", Description: "Home"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "X", Description: "Clear"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Pause"},
	}
}

func (s *TestRunScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		if msg.Err != nil {
			s.phase = phaseAnswering
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.result = &msg.Record
		s.phase = phaseResults
		s.index = 0
		s.load()
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TestRunScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch s.phase {
	case phaseSubmitting:
		return s, nil

	case phaseConfirm:
		switch key {
		case "y", "Y", "enter":
			return s, s.submit()
		case "n", "N", "esc":
			s.phase = phaseAnswering
		}
		return s, nil

	case phaseResults:
		switch key {
		case "right", "n", "tab":
			s.move(1)
		case "left", "p", "shift+tab":
			s.move(-1)
		case "h", "H":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
		return s, nil
	}

	if s.total() == 0 {
		return s, nil
	}
	switch key {
	case "right", "n", "tab":
		s.move(1)
		return s, nil
	case "left", "p", "shift+tab":
		s.move(-1)
		return s, nil
	case "s", "S":
		if s.env.State.AnsweredCount() < s.total() {
			s.phase = phaseConfirm
			return s, nil
		}
		return s, s.submit()
	}

	var changed bool
	s.choices, changed = s.choices.Update(msg)
	if changed {
		if err := s.env.State.Answer(s.index, s.choices.Picked); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		// Advance after a pick so the test can be taken with letters alone.
		if s.choices.Picked != quiz.NoAnswer && s.index < s.total()-1 {
			s.move(1)
		}
	}
	return s, nil
}

func (s *TestRunScreen) submit() tea.Cmd {
	s.phase = phaseSubmitting
	s.errMsg = ""
	env := s.env
	return func() tea.Msg {
		rec, err := env.Service.SubmitTest(env.Context(), env.State)
		return submittedMsg{Record: rec, Err: err}
	}
}

func (s *TestRunScreen) View(width, height int) string {
	if s.total() == 0 {
		return layout.Message(width, "No test in progress. Generate one from a plan day or the topic test form.", theme.Hint)
	}

	inner := width - 4
	var b strings.Builder

	switch s.phase {
	case phaseResults:
		b.WriteString(s.renderScore())
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.index+1, s.total())))
		b.WriteString("\n\n")
		b.WriteString(s.choices.View(inner))
	default:
		answered := s.env.State.AnsweredCount()
		b.WriteString(components.NewProgressBar(
			fmt.Sprintf("Question %d of %d", s.index+1, s.total()), answered, s.total(), inner).View())
		b.WriteString("\n\n")
		b.WriteString(s.choices.View(inner))
		b.WriteString("\n")
		b.WriteString(s.renderFooter(answered, inner))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *TestRunScreen) renderScore() string {
	r := s.result
	skipped := len(r.Questions) - r.Correct - r.Wrong
	pct := 0
	if len(r.Questions) > 0 {
		pct = r.Correct * 100 / len(r.Questions)
	}
	score := theme.Title.Render(fmt.Sprintf("Score %d%%", pct))
	parts := []string{
		theme.Correct.Render(fmt.Sprintf("%d correct", r.Correct)),
		theme.Incorrect.Render(fmt.Sprintf("%d wrong", r.Wrong)),
	}
	if skipped > 0 {
		parts = append(parts, theme.Subtitle.Render(fmt.Sprintf("%d skipped", skipped)))
	}
	return score + "   " + strings.Join(parts, "  ")
}

func (s *TestRunScreen) renderFooter(answered, width int) string {
	switch {
	case s.phase == phaseSubmitting:
		return theme.Hint.Render("Submitting...")
	case s.phase == phaseConfirm:
		left := s.total() - answered
		return theme.Warning.Width(width).Render(fmt.Sprintf(
			"%d question(s) unanswered will count as skipped. Submit anyway? (y/n)", left))
	case s.errMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Width(width).Render(s.errMsg)
	}
	return ""
}
