package planview

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/pdfexport"
	"github.com/eduwise/eduwise/internal/planner"
	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/screens/testrun"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

type dayTestMsg struct {
	Day int
	Err error
}

type exportedMsg struct {
	Path string
	Err  error
}

// PlanViewScreen shows the active plan: its request, topics and the daily
// schedule. A day can be turned into a test or the plan exported as PDF.
type PlanViewScreen struct {
	env      *screen.Env
	selected int
	busy     string
	status   string
	errMsg   string
}

var _ screen.Screen = (*PlanViewScreen)(nil)
var _ screen.KeyHintProvider = (*PlanViewScreen)(nil)

// New creates a PlanViewScreen for env's active plan.
func New(env *screen.Env) *PlanViewScreen {
	return &PlanViewScreen{env: env}
}

func (s *PlanViewScreen) plan() *planner.Plan {
	return s.env.State.ActivePlan
}

func (s *PlanViewScreen) Init() tea.Cmd {
	return nil
}

func (s *PlanViewScreen) Title() string {
	if p := s.plan(); p != nil {
		return "Plan: " + p.Request.Topic
	}
	return "Plan"
}

func (s *PlanViewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Day"},
		{Key: "Enter", Description: "Test this day"},
		{Key: "E", Description: "Export PDF"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PlanViewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dayTestMsg:
		s.busy = ""
		if msg.Err != nil {
			s.errMsg = fmt.Sprintf("Day %d test: %v", msg.Day, msg.Err)
			return s, nil
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: testrun.New(s.env)}
		}

	case exportedMsg:
		s.busy = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.status = "Saved " + msg.Path
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.busy != "" || s.plan() == nil {
			return s, nil
		}
		days := s.plan().Schedule
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(days)-1 {
				s.selected++
			}
		case "home", "g":
			s.selected = 0
		case "end", "G":
			s.selected = max(len(days)-1, 0)
		case "enter":
			if len(days) == 0 {
				return s, nil
			}
			return s, s.generateDayTest(days[s.selected].Day)
		case "e", "E":
			return s, s.export()
		}
	}
	return s, nil
}

func (s *PlanViewScreen) generateDayTest(day int) tea.Cmd {
	s.busy = fmt.Sprintf("Writing questions for day %d...", day)
	s.errMsg, s.status = "", ""
	env := s.env
	return func() tea.Msg {
		_, err := env.Service.GenerateDayTest(env.Context(), env.State, day)
		return dayTestMsg{Day: day, Err: err}
	}
}

func (s *PlanViewScreen) export() tea.Cmd {
	plan := *s.plan()
	path := filepath.Join(s.env.ExportDir, pdfexport.FileName(plan))
	opts := s.env.PDF
	s.busy = "Exporting PDF..."
	s.errMsg, s.status = "", ""
	return func() tea.Msg {
		return exportedMsg{Path: path, Err: pdfexport.WriteFile(path, plan, opts)}
	}
}

func (s *PlanViewScreen) View(width, height int) string {
	p := s.plan()
	if p == nil {
		return layout.Message(width, "No plan is open. Create one or pick one from My plans.", theme.Hint)
	}

	inner := width - 4
	var b strings.Builder
	req := p.Request
	b.WriteString(theme.Title.Render(req.Topic))
	b.WriteString("  ")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %d min/day · %d days from %s",
		req.Level, req.DailyMinutes, len(p.Schedule), req.StartDate.Format(planner.DateLayout))))
	b.WriteString("\n")
	if names := p.TopicNames(); len(names) > 0 {
		b.WriteString(theme.Hint.Width(inner).Render("Topics: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	detail := s.renderDetail(p, inner)
	footer := s.renderStatus(inner)
	listHeight := height - lipgloss.Height(b.String()) - lipgloss.Height(detail) - lipgloss.Height(footer) - 2

	b.WriteString(s.renderDays(p.Schedule, inner, listHeight))
	b.WriteString("\n")
	b.WriteString(detail)
	b.WriteString("\n")
	b.WriteString(footer)

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

func (s *PlanViewScreen) renderDays(days []planner.StudyDay, width, height int) string {
	if len(days) == 0 {
		return theme.Hint.Render("The schedule is empty.")
	}
	lines := make([]string, len(days))
	for i, d := range days {
		topic := d.Topic
		if d.Subtopic != "" {
			topic += " / " + d.Subtopic
		}
		line := fmt.Sprintf("Day %-3d %s  %s", d.Day, d.Date, topic)
		if lipgloss.Width(line) > width-2 {
			line = string([]rune(line)[:max(width-3, 1)]) + "…"
		}
		if i == s.selected {
			lines[i] = theme.Selected.Render("▸ " + line)
		} else {
			lines[i] = theme.Unselected.Render("  " + line)
		}
	}
	return strings.Join(layout.Window(lines, s.selected, max(height, 3)), "\n")
}

func (s *PlanViewScreen) renderDetail(p *planner.Plan, width int) string {
	if len(p.Schedule) == 0 {
		return ""
	}
	d := p.Schedule[min(s.selected, len(p.Schedule)-1)]
	var flags []string
	if d.Review {
		flags = append(flags, "review")
	}
	if d.Practice {
		flags = append(flags, "practice")
	}
	body := theme.Label.Render(fmt.Sprintf("Day %d", d.Day)) + "  " + theme.Subtitle.Render(d.Activity)
	if len(flags) > 0 {
		body += "  " + theme.Warning.Render(strings.Join(flags, " · "))
	}
	body += "\n" + theme.Body.Render(d.Task)
	return theme.Card.Width(width).Render(body)
}

func (s *PlanViewScreen) renderStatus(width int) string {
	switch {
	case s.busy != "":
		return theme.Hint.Render(s.busy)
	case s.errMsg != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Width(width).Render(s.errMsg)
	case s.status != "":
		return lipgloss.NewStyle().Foreground(theme.Success).Width(width).Render(s.status)
	}
	return ""
}
