package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

// NoticeScreen shows a message until any key is pressed.
type NoticeScreen struct {
	title   string
	message string
	isError bool
}

var _ screen.Screen = (*NoticeScreen)(nil)

// New creates an informational notice.
func New(title, message string) *NoticeScreen {
	return &NoticeScreen{title: title, message: message}
}

// NewError creates a notice styled as an error.
func NewError(title string, err error) *NoticeScreen {
	return &NoticeScreen{title: title, message: err.Error(), isError: true}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return n, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	color := theme.Text
	if n.isError {
		color = theme.Error
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(color).
		Render(n.message + "\n\n" + theme.Hint.Render("press any key"))
}

func (n *NoticeScreen) Title() string {
	return n.title
}
