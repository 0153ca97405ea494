package dashboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/analysis"
	"github.com/eduwise/eduwise/internal/charts"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

type dashboardLoadedMsg struct {
	Dashboard analysis.Dashboard
	Err       error
}

// DashboardScreen charts the user's progress across all results.
type DashboardScreen struct {
	env    *screen.Env
	data   *analysis.Dashboard
	offset int
	errMsg string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen.
func New(env *screen.Env) *DashboardScreen {
	return &DashboardScreen{env: env}
}

func (s *DashboardScreen) Init() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		d, err := env.Service.Dashboard(env.Context(), env.State)
		return dashboardLoadedMsg{Dashboard: d, Err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.data = &msg.Dashboard
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return layout.Message(width, "Error: "+s.errMsg, lipgloss.NewStyle().Foreground(theme.Error))
	case s.data == nil:
		return layout.Message(width, "Loading dashboard...", theme.Hint)
	}

	body := charts.Dashboard(*s.data, width-4, charts.Themed())
	lines := strings.Split(body, "\n")
	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	// Clamp here since the content height is only known at render time.
	maxOffset := max(len(lines)-visible, 0)
	if s.offset > maxOffset {
		s.offset = maxOffset
	}
	end := min(s.offset+visible, len(lines))
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines[s.offset:end], "\n"))
}
