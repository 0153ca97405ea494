package testgen

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/questiongen"
	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/screens/testrun"
	"github.com/eduwise/eduwise/internal/ui/components"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

const (
	fieldTopic = iota
	fieldDifficulty
	fieldQuestions
	fieldSubmit
	numFields
)

type testReadyMsg struct {
	Err error
}

// TestGenScreen asks for a topic test: subject, tier and size.
type TestGenScreen struct {
	env        *screen.Env
	topic      components.TextInput
	difficulty components.Selector
	count      components.TextInput
	submit     components.Button
	focus      int
	busy       bool
	errMsg     string
}

var _ screen.Screen = (*TestGenScreen)(nil)
var _ screen.KeyHintProvider = (*TestGenScreen)(nil)
var _ screen.EscapeCapturer = (*TestGenScreen)(nil)

// New creates the form, prefilled with the active plan's subject.
func New(env *screen.Env) *TestGenScreen {
	tiers := make([]string, len(quiz.Difficulties))
	for i, d := range quiz.Difficulties {
		tiers[i] = string(d)
	}
	s := &TestGenScreen{
		env:        env,
		topic:      components.NewTextInput("Topic", "e.g. Photosynthesis", false, 120),
		difficulty: components.NewSelector("Difficulty", tiers, string(quiz.Medium)),
		count:      components.NewTextInput("Questions", "", true, 2),
		submit:     components.NewButton("Generate test", nil),
	}
	s.count.SetValue(fmt.Sprint(env.Service.Settings().TopicQuestionCount))
	if p := env.State.ActivePlan; p != nil {
		s.topic.SetValue(p.Request.Topic)
	}
	return s
}

func (s *TestGenScreen) Init() tea.Cmd {
	return s.setFocus(fieldTopic)
}

func (s *TestGenScreen) Title() string {
	return "Topic test"
}

func (s *TestGenScreen) CapturesEscape() bool {
	return s.busy
}

func (s *TestGenScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Difficulty"},
		{Key: "Enter", Description: "Next / Generate"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *TestGenScreen) setFocus(f int) tea.Cmd {
	s.focus = (f + numFields) % numFields
	s.topic.Blur()
	s.count.Blur()
	s.difficulty.Focused = s.focus == fieldDifficulty
	s.submit.Active = s.focus == fieldSubmit
	switch s.focus {
	case fieldTopic:
		return s.topic.Focus()
	case fieldQuestions:
		return s.count.Focus()
	}
	return nil
}

func (s *TestGenScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case testReadyMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		run := testrun.New(s.env)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: run} }

	case tea.KeyPressMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "enter":
			if s.focus == fieldSubmit {
				return s, s.generate()
			}
			return s, s.setFocus(s.focus + 1)
		}
		if s.focus == fieldDifficulty {
			s.difficulty = s.difficulty.Update(msg)
			return s, nil
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldQuestions:
		s.count, cmd = s.count.Update(msg)
	}
	return s, cmd
}

func (s *TestGenScreen) generate() tea.Cmd {
	s.topic.SetError("")
	s.count.SetError("")
	s.errMsg = ""

	topic := s.topic.Value()
	if topic == "" {
		s.topic.SetError("topic is required")
		return nil
	}
	n, err := s.count.NumericValue()
	if err != nil || n < 1 || n > questiongen.DefaultConfig().MaxPerRequest {
		s.count.SetError(fmt.Sprintf("1-%d questions", questiongen.DefaultConfig().MaxPerRequest))
		return nil
	}
	d := quiz.Difficulty(s.difficulty.Value())

	s.busy = true
	env := s.env
	return func() tea.Msg {
		_, err := env.Service.GenerateTopicTest(env.Context(), env.State, topic, d, n)
		return testReadyMsg{Err: err}
	}
}

func (s *TestGenScreen) View(width, height int) string {
	rows := []string{
		theme.Subtitle.Render("Practice any subject. Results feed the weak-topic analysis."),
		"",
		s.topic.View(),
		s.difficulty.View(),
		s.count.View(),
		"",
		s.submit.View(),
		"",
	}
	switch {
	case s.busy:
		rows = append(rows, theme.Hint.Render("Writing questions..."))
	case s.errMsg != "":
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Error).Width(width-4).Render(s.errMsg))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(rows, "\n"))
}
