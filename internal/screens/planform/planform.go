package planform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/screens/planview"
	"github.com/eduwise/eduwise/internal/ui/components"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

// Focus order.
const (
	fieldTopic = iota
	fieldLevel
	fieldMinutes
	fieldStart
	fieldDays
	fieldSubmit
	fieldCount
)

type planCreatedMsg struct {
	Err error
}

// PlanFormScreen collects a PlanRequest and generates the plan.
type PlanFormScreen struct {
	env     *screen.Env
	now     func() time.Time
	topic   components.TextInput
	level   components.Selector
	minutes components.TextInput
	start   components.TextInput
	days    components.TextInput
	submit  components.Button
	focus   int
	busy    bool
	errMsg  string
}

var _ screen.Screen = (*PlanFormScreen)(nil)
var _ screen.KeyHintProvider = (*PlanFormScreen)(nil)
var _ screen.EscapeCapturer = (*PlanFormScreen)(nil)

// New creates an empty plan form.
func New(env *screen.Env) *PlanFormScreen {
	levels := make([]string, len(planner.Levels))
	for i, l := range planner.Levels {
		levels[i] = string(l)
	}
	s := &PlanFormScreen{
		env:     env,
		now:     time.Now,
		topic:   components.NewTextInput("Topic", "e.g. Linear algebra", false, 120),
		level:   components.NewSelector("Level", levels, string(planner.Beginner)),
		minutes: components.NewTextInput("Minutes / day", "60", true, 3),
		start:   components.NewTextInput("Start date", "today (YYYY-MM-DD)", false, 10),
		days:    components.NewTextInput("Days", fmt.Sprint(planner.DefaultDurationDays), true, 3),
	}
	s.minutes.SetValue("60")
	s.submit = components.NewButton("Create plan", nil)
	return s
}

func (s *PlanFormScreen) Init() tea.Cmd {
	return s.setFocus(fieldTopic)
}

func (s *PlanFormScreen) Title() string {
	return "New plan"
}

func (s *PlanFormScreen) CapturesEscape() bool {
	return s.busy
}

func (s *PlanFormScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Field"},
		{Key: "←→", Description: "Level"},
		{Key: "Enter", Description: "Next / Create"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *PlanFormScreen) inputs() []*components.TextInput {
	return []*components.TextInput{&s.topic, &s.minutes, &s.start, &s.days}
}

func (s *PlanFormScreen) setFocus(f int) tea.Cmd {
	s.focus = (f + fieldCount) % fieldCount
	for _, in := range s.inputs() {
		in.Blur()
	}
	s.level.Focused = s.focus == fieldLevel
	s.submit.Active = s.focus == fieldSubmit

	switch s.focus {
	case fieldTopic:
		return s.topic.Focus()
	case fieldMinutes:
		return s.minutes.Focus()
	case fieldStart:
		return s.start.Focus()
	case fieldDays:
		return s.days.Focus()
	}
	return nil
}

func (s *PlanFormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planCreatedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		view := planview.New(s.env)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: view} }

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
				return s, s.create()
			}
			return s, s.setFocus(s.focus + 1)
		}
		if s.focus == fieldLevel {
			s.level = s.level.Update(msg)
			return s, nil
		}
	}

	// Everything else, including cursor blinks, goes to the focused input.
	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldMinutes:
		s.minutes, cmd = s.minutes.Update(msg)
	case fieldStart:
		s.start, cmd = s.start.Update(msg)
	case fieldDays:
		s.days, cmd = s.days.Update(msg)
	}
	return s, cmd
}

// request builds the PlanRequest from the form, marking bad fields.
func (s *PlanFormScreen) request() (planner.PlanRequest, bool) {
	for _, in := range s.inputs() {
		in.SetError("")
	}
	s.errMsg = ""

	req := planner.PlanRequest{
		Topic: s.topic.Value(),
		Level: planner.Level(s.level.Value()),
	}
	ok := true
	if v := s.minutes.Value(); v != "" {
		n, err := s.minutes.NumericValue()
		if err != nil {
			s.minutes.SetError("not a number")
			ok = false
		}
		req.DailyMinutes = n
	}
	if v := s.start.Value(); v != "" {
		t, err := time.Parse(planner.DateLayout, v)
		if err != nil {
			s.start.SetError("use YYYY-MM-DD")
			ok = false
		}
		req.StartDate = t
	}
	if v := s.days.Value(); v != "" {
		n, err := s.days.NumericValue()
		if err != nil {
			s.days.SetError("not a number")
			ok = false
		}
		req.DurationDays = n
	}
	if !ok {
		return req, false
	}

	req = req.WithDefaults(s.now())
	if err := req.Validate(); err != nil {
		var ve *quiz.ValidationError
		if errors.As(err, &ve) {
			switch ve.Field {
			case "topic":
				s.topic.SetError(ve.Message)
			case "daily_minutes":
				s.minutes.SetError(ve.Message)
			case "start_date":
				s.start.SetError(ve.Message)
			case "duration_days":
				s.days.SetError(ve.Message)
			default:
				s.errMsg = ve.Message
			}
		} else {
			s.errMsg = err.Error()
		}
		return req, false
	}
	return req, true
}

func (s *PlanFormScreen) create() tea.Cmd {
	req, ok := s.request()
	if !ok {
		return nil
	}
	s.busy = true
	env := s.env
	return func() tea.Msg {
		_, err := env.Service.CreatePlan(env.Context(), env.State, req)
		return planCreatedMsg{Err: err}
	}
}

func (s *PlanFormScreen) View(width, height int) string {
	rows := []string{
		theme.Subtitle.Render("Describe what you want to learn. The plan is written by the model and saved."),
		"",
		s.topic.View(),
		s.level.View(),
		s.minutes.View(),
		s.start.View(),
		s.days.View(),
		"",
		s.submit.View(),
		"",
	}
	switch {
	case s.busy:
		rows = append(rows, theme.Hint.Render("Building the learning path and schedule. This can take a minute..."))
	case s.errMsg != "":
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.Error).Width(width-4).Render(s.errMsg))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(rows, "\n"))
}
