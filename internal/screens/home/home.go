package home

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/screens/dashboard"
	"github.com/eduwise/eduwise/internal/screens/history"
	"github.com/eduwise/eduwise/internal/screens/insights"
	"github.com/eduwise/eduwise/internal/screens/notice"
	"github.com/eduwise/eduwise/internal/screens/planform"
	"github.com/eduwise/eduwise/internal/screens/plans"
	"github.com/eduwise/eduwise/internal/screens/planview"
	"github.com/eduwise/eduwise/internal/screens/testgen"
	"github.com/eduwise/eduwise/internal/screens/testrun"
	"github.com/eduwise/eduwise/internal/session"
	"github.com/eduwise/eduwise/internal/ui/components"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

// Menu positions.
const (
	itemNewPlan = iota
	itemCurrentPlan
	itemPlans
	itemResume
	itemTopicTest
	itemWeakTopics
	itemDashboard
	itemHistory
	itemQuit
)

type latestPlanMsg struct {
	Err error
}

// HomeScreen is the main menu. It opens the newest plan on start.
type HomeScreen struct {
	env    *screen.Env
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: factory()} }
		}
	}

	h.menu = components.NewMenu([]components.MenuItem{
		itemNewPlan: {Label: "New study plan", Hint: "topic, level, daily time",
			Action: push(func() screen.Screen { return planform.New(env) })},
		itemCurrentPlan: {Label: "Current plan", Hint: "schedule, day tests, PDF export",
			Action: push(func() screen.Screen { return planview.New(env) })},
		itemPlans: {Label: "My plans", Hint: "open or delete saved plans",
			Action: push(func() screen.Screen { return plans.New(env) })},
		itemResume: {Label: "Resume test",
			Action: push(func() screen.Screen { return testrun.New(env) })},
		itemTopicTest: {Label: "Topic test", Hint: "questions on any subject",
			Action: push(func() screen.Screen { return testgen.New(env) })},
		itemWeakTopics: {Label: "Weak topics", Hint: "analysis and weighted practice",
			Action: push(func() screen.Screen { return insights.New(env) })},
		itemDashboard: {Label: "Dashboard", Hint: "progress charts",
			Action: push(func() screen.Screen { return dashboard.New(env) })},
		itemHistory: {Label: "History", Hint: "past results",
			Action: push(func() screen.Screen { return history.New(env) })},
		itemQuit: {Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.sync()
	return h
}

// sync enables the items that depend on session state.
func (h *HomeScreen) sync() {
	st := h.env.State
	h.menu.Items[itemCurrentPlan].Disabled = st.ActivePlan == nil
	if st.ActivePlan != nil {
		h.menu.Items[itemCurrentPlan].Label = "Current plan: " + st.ActivePlan.Request.Topic
	} else {
		h.menu.Items[itemCurrentPlan].Label = "Current plan"
	}

	resume := &h.menu.Items[itemResume]
	resume.Disabled = len(st.ActiveBatch) == 0
	resume.Hint = ""
	if !resume.Disabled {
		resume.Hint = fmt.Sprintf("%s, %d/%d answered", st.ActiveLabel, st.AnsweredCount(), len(st.ActiveBatch))
	}

	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu.Selected = itemNewPlan
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.env.State.ActivePlan != nil {
		return nil
	}
	env := h.env
	return func() tea.Msg {
		_, err := env.Service.LoadLatestPlan(env.Context(), env.State)
		return latestPlanMsg{Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(latestPlanMsg); ok {
		h.sync()
		if h.env.State.ActivePlan != nil {
			h.menu.Selected = itemCurrentPlan
		}
		if m.Err != nil && !errors.Is(m.Err, session.ErrNoActivePlan) {
			h.errMsg = "Could not open your latest plan."
			failed := notice.NewError("Could not open plan", m.Err)
			return h, func() tea.Msg { return router.PushScreenMsg{Screen: failed} }
		}
		return h, nil
	}

	h.sync()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.sync()

	var sections []string
	sections = append(sections, theme.Title.Render("What would you like to do?"))

	if status := h.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, h.menu.View())
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(h.errMsg))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Padding(1, 4).Render(content))
}

func (h *HomeScreen) renderStatus() string {
	st := h.env.State
	var lines []string
	if p := st.ActivePlan; p != nil {
		lines = append(lines, theme.Label.Render("Plan  ")+theme.Body.Render(fmt.Sprintf(
			"%s · %s · %d days", p.Request.Topic, p.Request.Level, len(p.Schedule))))
	}
	if r := st.LastResult; r != nil {
		lines = append(lines, theme.Label.Render("Last  ")+theme.Body.Render(fmt.Sprintf(
			"%d of %d correct", r.Correct, len(r.Questions))))
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}
