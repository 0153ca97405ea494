package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/eduwise/eduwise/internal/ui/theme"
)

// Selector picks one of a fixed set of values with the left and right keys.
type Selector struct {
	Label   string
	Options []string
	Index   int
	Focused bool
}

// NewSelector creates a selector with initial selected when present.
func NewSelector(label string, options []string, initial string) Selector {
	s := Selector{Label: label, Options: options}
	for i, o := range options {
		if o == initial {
			s.Index = i
		}
	}
	return s
}

// Update cycles through the options while focused.
func (s Selector) Update(msg tea.Msg) Selector {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.Focused || len(s.Options) == 0 {
		return s
	}
	switch kmsg.String() {
	case "left", "h":
		s.Index = (s.Index + len(s.Options) - 1) % len(s.Options)
	case "right", "l", "space", " ":
		s.Index = (s.Index + 1) % len(s.Options)
	}
	return s
}

// Value returns the selected option.
func (s Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Index]
}

// View renders every option with the selected one highlighted.
func (s Selector) View() string {
	labelStyle := theme.Subtitle
	if s.Focused {
		labelStyle = theme.Label
	}
	parts := make([]string, len(s.Options))
	for i, o := range s.Options {
		if i == s.Index {
			parts[i] = theme.Selected.Render("[" + o + "]")
		} else {
			parts[i] = theme.Subtitle.Render(" " + o + " ")
		}
	}
	arrows := "  "
	if s.Focused {
		arrows = theme.Hint.Render("◂ ")
	}
	return labelStyle.Render(padRight(s.Label, 16)) + arrows + strings.Join(parts, " ")
}
