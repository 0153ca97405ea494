package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/session"
	"github.com/eduwise/eduwise/internal/ui/layout"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

type historyLoadedMsg struct {
	History session.History
	Err     error
}

type resultDeletedMsg struct {
	Err error
}

// HistoryScreen lists submitted tests, newest first. A row expands to
// show every question with the learner's answer.
type HistoryScreen struct {
	env       *screen.Env
	history   session.History
	selected  int
	expanded  map[int64]bool
	loaded    bool
	confirmID int64
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.EscapeCapturer = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screen.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		expanded: make(map[int64]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	env := s.env
	return func() tea.Msg {
		h, err := env.Service.History(env.Context(), env.State)
		return historyLoadedMsg{History: h, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) CapturesEscape() bool {
	return s.confirmID != 0
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmID != 0 {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "D", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) results() []quiz.TestRecord {
	return s.history.Results
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.history = msg.History
		if s.selected >= len(s.results()) {
			s.selected = max(len(s.results())-1, 0)
		}
		return s, nil

	case resultDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.Init()

	case tea.KeyPressMsg:
		key := msg.String()
		if s.confirmID != 0 {
			id := s.confirmID
			switch key {
			case "y", "Y":
				s.confirmID = 0
				env := s.env
				return s, func() tea.Msg {
					return resultDeletedMsg{Err: env.Service.DeleteResult(env.Context(), env.State, id)}
				}
			case "n", "N", "esc":
				s.confirmID = 0
			}
			return s, nil
		}

		results := s.results()
		if len(results) == 0 {
			return s, nil
		}
		switch key {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(results)-1 {
				s.selected++
			}
		case "enter":
			id := results[s.selected].ID
			s.expanded[id] = !s.expanded[id]
		case "d", "D", "delete":
			s.confirmID = results[s.selected].ID
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" && !s.loaded {
		return layout.Message(width, "Error: "+s.errMsg, lipgloss.NewStyle().Foreground(theme.Error))
	}
	if !s.loaded {
		return layout.Message(width, "Loading history...", theme.Hint)
	}
	results := s.results()
	if len(results) == 0 {
		return layout.Message(width, "No tests taken yet. Start one from a plan day or a topic test.", theme.Hint)
	}

	var lines []string
	focus := 0
	for i, r := range results {
		if i == s.selected {
			focus = len(lines)
		}
		lines = append(lines, s.renderRow(i, r))
		if s.expanded[r.ID] {
			lines = append(lines, renderDetails(r, width-10)...)
		}
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d tests · %d plans", len(results), len(s.history.Plans))))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(layout.Window(lines, focus, height-6), "\n"))
	b.WriteString("\n\n")
	switch {
	case s.confirmID != 0:
		b.WriteString(theme.Warning.Render(fmt.Sprintf("Delete result #%d? (y/n)", s.confirmID)))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *HistoryScreen) renderRow(i int, r quiz.TestRecord) string {
	total := len(r.Questions)
	var accuracy float64
	if total > 0 {
		accuracy = float64(r.Correct) / float64(total) * 100
	}
	prefix := "  "
	style := theme.Unselected
	if i == s.selected {
		prefix = "▸ "
		style = theme.Selected
	}
	line := fmt.Sprintf("%s%s  %-30s %2d questions  %3.0f%%",
		prefix, r.CreatedAt.Local().Format("Jan 02, 2006 15:04"), topics(r, 30), total, accuracy)
	return style.Render(line)
}

// topics lists the distinct question topics of r in order, cut to n runes.
func topics(r quiz.TestRecord, n int) string {
	seen := make(map[string]bool)
	var names []string
	for _, q := range r.Questions {
		t := q.Topic
		if t == "" {
			t = "untagged"
		}
		if !seen[t] {
			seen[t] = true
			names = append(names, t)
		}
	}
	s := []rune(strings.Join(names, ", "))
	if len(s) > n {
		return string(s[:n-1]) + "…"
	}
	return string(s)
}

func renderDetails(r quiz.TestRecord, width int) []string {
	out := make([]string, 0, len(r.Questions))
	for _, q := range r.Questions {
		text := []rune(q.Text)
		if len(text) > width-24 && width > 30 {
			text = append(text[:width-25], '…')
		}
		correct := q.Choices.Correct()
		switch {
		case !q.Answered():
			out = append(out, theme.Subtitle.Render(fmt.Sprintf("      –  %s  (skipped, answer %s)", string(text), correct)))
		case q.IsCorrect():
			out = append(out, theme.Correct.Render(fmt.Sprintf("      ✓  %s", string(text))))
		default:
			out = append(out, theme.Incorrect.Render(fmt.Sprintf("      ✗  %s  (you %s, answer %s)", string(text), q.UserAnswer, correct)))
		}
	}
	return out
}
