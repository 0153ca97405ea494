// Package charts draws small text charts for the dashboard, in the TUI and
// on the command line.
package charts

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/eduwise/eduwise/internal/ui/theme"
)

const (
	fullBlock     = "█"
	emptyBlock    = "░"
	maxLabelWidth = 24
	minBarWidth   = 5
	valueWidth    = 10
)

// Palette styles the parts of a chart.
type Palette struct {
	Label lipgloss.Style
	Bar   lipgloss.Style
	Good  lipgloss.Style
	Bad   lipgloss.Style
	Empty lipgloss.Style
	Value lipgloss.Style
}

// Plain renders without any styling.
func Plain() Palette {
	s := lipgloss.NewStyle()
	return Palette{Label: s, Bar: s, Good: s, Bad: s, Empty: s, Value: s}
}

// Themed uses the application theme colours.
func Themed() Palette {
	return Palette{
		Label: lipgloss.NewStyle().Foreground(theme.Text),
		Bar:   lipgloss.NewStyle().Foreground(theme.Secondary),
		Good:  lipgloss.NewStyle().Foreground(theme.Success),
		Bad:   lipgloss.NewStyle().Foreground(theme.Error),
		Empty: lipgloss.NewStyle().Foreground(theme.Border),
		Value: lipgloss.NewStyle().Foreground(theme.TextDim),
	}
}

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64

	// Text replaces the formatted value when set.
	Text string
}

func (b Bar) text() string {
	if b.Text != "" {
		return b.Text
	}
	return trimFloat(b.Value)
}

// layout splits width into label and bar columns.
func layout(labels []string, width int) (labelW, barW int) {
	for _, l := range labels {
		labelW = max(labelW, runewidth.StringWidth(l))
	}
	labelW = min(labelW, maxLabelWidth)
	barW = max(width-labelW-valueWidth-2, minBarWidth)
	return labelW, barW
}

func label(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// cells converts value/maxValue into a bar length in [0, width].
func cells(value, maxValue float64, width int) int {
	if maxValue <= 0 || value <= 0 {
		return 0
	}
	n := int(math.Round(value / maxValue * float64(width)))
	return min(max(n, 1), width)
}

// Bars draws one horizontal bar per item, scaled to the largest value.
func Bars(items []Bar, width int, p Palette) string {
	if len(items) == 0 {
		return ""
	}
	labels := make([]string, len(items))
	var top float64
	for i, it := range items {
		labels[i] = it.Label
		top = math.Max(top, it.Value)
	}
	labelW, barW := layout(labels, width)

	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := cells(it.Value, top, barW)
		fmt.Fprintf(&b, "%s %s%s %s",
			p.Label.Render(label(it.Label, labelW)),
			p.Bar.Render(strings.Repeat(fullBlock, n)),
			p.Empty.Render(strings.Repeat(emptyBlock, barW-n)),
			p.Value.Render(it.text()))
	}
	return b.String()
}

// Share draws each item's percentage of the total.
func Share(items []Bar, width int, p Palette) string {
	var total float64
	for _, it := range items {
		total += it.Value
	}
	if total <= 0 {
		return ""
	}
	scaled := make([]Bar, len(items))
	for i, it := range items {
		pct := it.Value / total * 100
		scaled[i] = Bar{Label: it.Label, Value: pct, Text: fmt.Sprintf("%.0f%%", pct)}
	}
	labels := make([]string, len(scaled))
	for i, it := range scaled {
		labels[i] = it.Label
	}
	labelW, barW := layout(labels, width)

	var b strings.Builder
	for i, it := range scaled {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := cells(it.Value, 100, barW)
		fmt.Fprintf(&b, "%s %s%s %s",
			p.Label.Render(label(it.Label, labelW)),
			p.Bar.Render(strings.Repeat(fullBlock, n)),
			p.Empty.Render(strings.Repeat(emptyBlock, barW-n)),
			p.Value.Render(it.Text))
	}
	return b.String()
}

// Pair is a good/bad split for one label, e.g. correct and wrong answers.
type Pair struct {
	Label string
	Good  int
	Bad   int
}

// Grouped draws a good bar over a bad bar for every pair, all scaled to
// the largest count.
func Grouped(pairs []Pair, width int, p Palette) string {
	if len(pairs) == 0 {
		return ""
	}
	labels := make([]string, len(pairs))
	top := 0
	for i, pr := range pairs {
		labels[i] = pr.Label
		top = max(top, pr.Good, pr.Bad)
	}
	labelW, barW := layout(labels, width)
	blank := strings.Repeat(" ", labelW)

	var b strings.Builder
	for i, pr := range pairs {
		if i > 0 {
			b.WriteByte('\n')
		}
		g := cells(float64(pr.Good), float64(top), barW)
		w := cells(float64(pr.Bad), float64(top), barW)
		fmt.Fprintf(&b, "%s %s%s %s\n",
			p.Label.Render(label(pr.Label, labelW)),
			p.Good.Render(strings.Repeat(fullBlock, g)),
			strings.Repeat(" ", barW-g),
			p.Value.Render(fmt.Sprintf("%d ok", pr.Good)))
		fmt.Fprintf(&b, "%s %s%s %s",
			blank,
			p.Bad.Render(strings.Repeat(fullBlock, w)),
			strings.Repeat(" ", barW-w),
			p.Value.Render(fmt.Sprintf("%d wrong", pr.Bad)))
	}
	return b.String()
}

// Progress draws one bar per day against its target.
func Progress(days []Day, width int, p Palette) string {
	if len(days) == 0 {
		return ""
	}
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Label
	}
	labelW, barW := layout(labels, width)

	var b strings.Builder
	for i, d := range days {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := cells(float64(d.Done), float64(d.Target), barW)
		style := p.Bar
		if d.Done >= d.Target {
			style = p.Good
		}
		fmt.Fprintf(&b, "%s %s%s %s",
			p.Label.Render(label(d.Label, labelW)),
			style.Render(strings.Repeat(fullBlock, n)),
			p.Empty.Render(strings.Repeat(emptyBlock, barW-n)),
			p.Value.Render(fmt.Sprintf("%d/%d", d.Done, d.Target)))
	}
	return b.String()
}

// Day is progress toward a daily target.
type Day struct {
	Label  string
	Done   int
	Target int
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
