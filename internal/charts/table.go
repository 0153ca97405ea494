package charts

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table lays out rows in columns padded to display width. Columns listed
// in right are right-aligned.
func Table(headers []string, rows [][]string, right map[int]bool) string {
	cols := len(headers)
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows)+2)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, right))
		total := 0
		for _, w := range widths {
			total += w
		}
		lines = append(lines, strings.Repeat("─", total+cols-1))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, right))
	}
	return strings.Join(lines, "\n")
}

func formatRow(row []string, widths []int, right map[int]bool) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		if right[i] {
			b.WriteString(runewidth.FillLeft(cell, w))
		} else {
			b.WriteString(runewidth.FillRight(cell, w))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
