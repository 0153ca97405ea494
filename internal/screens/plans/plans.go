package plans

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/screens/planview"
	"github.com/eduwise/eduwise/internal/session"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

type plansLoadedMsg struct {
	Plans []session.PlanEntry
	Err   error
}

type planOpenedMsg struct {
	Err error
}

type planDeletedMsg struct {
	Err error
}

// PlansScreen lists stored plans, newest first.
type PlansScreen struct {
	env       *screen.Env
	plans     []session.PlanEntry
	selected  int
	loaded    bool
	confirmID int64
	errMsg    string
}

var _ screen.Screen = (*PlansScreen)(nil)
var _ screen.KeyHintProvider = (*PlansScreen)(nil)
var _ screen.EscapeCapturer = (*PlansScreen)(nil)

// New creates a PlansScreen.
func New(env *screen.Env) *PlansScreen {
	return &PlansScreen{env: env}
}

func (s *PlansScreen) Init() tea.Cmd {
	return s.load()
}

func (s *PlansScreen) load() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		plans, err := env.Service.ListPlans(env.Context(), env.State)
		return plansLoadedMsg{Plans: plans, Err: err}
	}
}

func (s *PlansScreen) Title() string {
	return "My plans"
}

func (s *PlansScreen) CapturesEscape() bool {
	return s.confirmID != 0
}

func (s *PlansScreen) KeyHints() []layout.KeyHint {
	if s.confirmID != 0 {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "D", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PlansScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.plans = msg.Plans
		if s.selected >= len(s.plans) {
			s.selected = max(len(s.plans)-1, 0)
		}
		return s, nil

	case planOpenedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		view := planview.New(s.env)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: view} }

	case planDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.load()

	case tea.KeyPressMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *PlansScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.confirmID != 0 {
		id := s.confirmID
		switch key {
		case "y", "Y":
			s.confirmID = 0
			env := s.env
			return s, func() tea.Msg {
				return planDeletedMsg{Err: env.Service.DeletePlan(env.Context(), env.State, id)}
			}
		case "n", "N", "esc":
			s.confirmID = 0
		}
		return s, nil
	}

	if len(s.plans) == 0 {
		return s, nil
	}
	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.plans)-1 {
			s.selected++
		}
	case "enter":
		id := s.plans[s.selected].ID
		env := s.env
		s.errMsg = ""
		return s, func() tea.Msg {
			_, err := env.Service.OpenPlan(env.Context(), env.State, id)
			return planOpenedMsg{Err: err}
		}
	case "d", "D", "delete":
		s.confirmID = s.plans[s.selected].ID
	}
	return s, nil
}

func (s *PlansScreen) View(width, height int) string {
	if !s.loaded {
		return layout.Message(width, "Loading plans...", theme.Hint)
	}
	if len(s.plans) == 0 && s.errMsg == "" {
		return layout.Message(width, "No plans yet. Create one from the home menu.", theme.Hint)
	}

	lines := make([]string, 0, len(s.plans))
	for i, p := range s.plans {
		req := p.Plan.Request
		active := "  "
		if p.ID == s.env.State.ActivePlanID {
			active = "● "
		}
		line := fmt.Sprintf("%s%-28s %-12s %3d days  from %s  created %s",
			active, truncate(req.Topic, 28), req.Level, len(p.Plan.Schedule),
			req.StartDate.Format("Jan 02"), p.CreatedAt.Local().Format("Jan 02 15:04"))
		style := theme.Unselected
		prefix := "  "
		if i == s.selected {
			style = theme.Selected
			prefix = "▸ "
		}
		lines = append(lines, style.Render(prefix+line))
	}

	var b strings.Builder
	b.WriteString(strings.Join(layout.Window(lines, s.selected, height-4), "\n"))
	b.WriteString("\n\n")
	if s.confirmID != 0 {
		b.WriteString(theme.Warning.Render(fmt.Sprintf("Delete plan #%d? (y/n)", s.confirmID)))
	} else if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
