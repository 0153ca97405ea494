// Package pdfexport renders a learning plan as a PDF document.
package pdfexport

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/eduwise/eduwise/internal/planner"
)

// EntriesPerPage is how many schedule days share one page.
const EntriesPerPage = 4

// Options configures Export.
type Options struct {
	// FontPath is a TTF font to embed. Empty uses the core Helvetica
	// font, which only covers Latin-1.
	FontPath string
}

const utf8Family = "plan"

// Export writes plan to w.
func Export(w io.Writer, plan planner.Plan, opts Options) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Learning plan: "+plan.Request.Topic, true)
	pdf.SetAutoPageBreak(true, 15)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(asciiPunct(s)) }
	if opts.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", opts.FontPath)
		pdf.AddUTF8Font(utf8Family, "B", opts.FontPath)
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("load font %s: %w", opts.FontPath, err)
		}
		family = utf8Family
		text = func(s string) string { return s }
	}

	r := &renderer{pdf: pdf, family: family, text: text}
	r.cover(plan)
	r.schedule(plan.Schedule)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type renderer struct {
	pdf    *fpdf.Fpdf
	family string
	text   func(string) string
}

func (r *renderer) heading(s string, size float64) {
	r.pdf.SetFont(r.family, "B", size)
	r.pdf.MultiCell(0, size*0.5, r.text(s), "", "L", false)
	r.pdf.Ln(2)
}

func (r *renderer) line(s string) {
	r.pdf.SetFont(r.family, "", 11)
	r.pdf.MultiCell(0, 6, r.text(s), "", "L", false)
}

func (r *renderer) cover(plan planner.Plan) {
	req := plan.Request
	r.pdf.AddPage()
	r.heading("Learning plan: "+req.Topic, 18)
	if !plan.CreatedAt.IsZero() {
		r.line("Created: " + plan.CreatedAt.Format(planner.DateLayout))
	}
	r.line(fmt.Sprintf("Level: %s, %d minutes a day, %d days from %s",
		req.Level, req.DailyMinutes, req.DurationDays, req.StartDate.Format(planner.DateLayout)))
	r.pdf.Ln(4)

	r.heading("Topics", 14)
	for _, t := range plan.Path.Topics {
		r.line("- " + t.Topic)
		for _, sub := range t.Subtopics {
			r.line("    - " + sub)
		}
	}
	r.pdf.Ln(4)

	r.heading("Prerequisites", 14)
	wrote := false
	for _, l := range plan.Path.Links {
		if len(l.Prerequisites) == 0 {
			continue
		}
		r.line(fmt.Sprintf("- %s: %s", l.Topic, strings.Join(l.Prerequisites, ", ")))
		wrote = true
	}
	if !wrote {
		r.line("None")
	}
}

func (r *renderer) schedule(days []planner.StudyDay) {
	for i, d := range days {
		if i%EntriesPerPage == 0 {
			r.pdf.AddPage()
			r.heading("Daily plan", 14)
		}
		r.pdf.SetFont(r.family, "B", 12)
		r.pdf.MultiCell(0, 7, r.text(fmt.Sprintf("Day %d - %s", d.Day, d.Date)), "B", "L", false)
		r.line(fmt.Sprintf("Topic: %s / %s", d.Topic, d.Subtopic))
		r.line("Activity: " + d.Activity)
		r.line("Task: " + d.Task)
		r.line(fmt.Sprintf("Review: %s    Practice questions: %s", yesNo(d.Review), yesNo(d.Practice)))
		r.pdf.Ln(5)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var punctReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
	"…", "...",
	" ", " ",
)

// asciiPunct replaces typographic punctuation the core fonts lack.
func asciiPunct(s string) string {
	return punctReplacer.Replace(s)
}
