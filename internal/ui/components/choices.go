package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eduwise/eduwise/internal/quiz"
	"github.com/eduwise/eduwise/internal/ui/theme"
)

// Choices is the A-D selector for one question. The cursor moves with the
// arrow keys; a letter or digit jumps to and picks an option directly.
type Choices struct {
	Question quiz.Question
	Cursor   int
	// Picked is the learner's selection, NoAnswer until one is made.
	Picked quiz.Label
	// Review shows the correct option and the learner's mistake.
	Review bool
}

// NewChoices creates a selector for q with picked preselected.
func NewChoices(q quiz.Question, picked quiz.Label) Choices {
	c := Choices{Question: q, Picked: picked}
	if picked.Valid() {
		c.Cursor = picked.Index()
	}
	return c
}

// Update handles selection keys. It reports whether the pick changed.
func (c Choices) Update(msg tea.Msg) (Choices, bool) {
	if c.Review {
		return c, false
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, false
	case "down", "j":
		if c.Cursor < quiz.OptionCount-1 {
			c.Cursor++
		}
		return c, false
	case "enter", "space", " ":
		return c.pick(quiz.Labels[c.Cursor])
	case "backspace", "x":
		if c.Picked == quiz.NoAnswer {
			return c, false
		}
		c.Picked = quiz.NoAnswer
		return c, true
	}

	if l, ok := keyLabel(key); ok {
		c.Cursor = l.Index()
		return c.pick(l)
	}
	return c, false
}

func (c Choices) pick(l quiz.Label) (Choices, bool) {
	if c.Picked == l {
		return c, false
	}
	c.Picked = l
	return c, true
}

// keyLabel maps a..d, A..D and 1..4 to option labels.
func keyLabel(key string) (quiz.Label, bool) {
	if len(key) != 1 {
		return quiz.NoAnswer, false
	}
	switch ch := key[0]; {
	case ch >= '1' && ch <= '4':
		return quiz.Labels[ch-'1'], true
	case ch >= 'a' && ch <= 'd':
		return quiz.Labels[ch-'a'], true
	case ch >= 'A' && ch <= 'D':
		return quiz.Labels[ch-'A'], true
	}
	return quiz.NoAnswer, false
}

// View renders the question and its options wrapped to width.
func (c Choices) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(c.Question.Text))
	b.WriteString("\n\n")

	correct := c.Question.Choices.Correct()
	for i, text := range c.Question.Choices.Options() {
		l := quiz.Labels[i]
		mark := "  "
		switch {
		case c.Review && l == correct:
			mark = "✓ "
		case c.Review && l == c.Picked:
			mark = "✗ "
		case !c.Review && i == c.Cursor:
			mark = "▸ "
		}
		radio := "( )"
		if l == c.Picked {
			radio = "(•)"
		}
		line := fmt.Sprintf("%s%s %s) %s", mark, radio, l, text)

		style := theme.Unselected
		switch {
		case c.Review && l == correct:
			style = theme.Correct
		case c.Review && l == c.Picked:
			style = theme.Incorrect
		case c.Review:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}

	if c.Review && c.Question.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(width).Render(c.Question.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}
