package pdfexport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/eduwise/eduwise/internal/planner"
)

// FileName is the default export name for plan, e.g.
// "learning-plan-linear-algebra-2026-05-04.pdf".
func FileName(plan planner.Plan) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plan.Request.Topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "plan"
	}
	name := "learning-plan-" + slug
	if !plan.Request.StartDate.IsZero() {
		name += "-" + plan.Request.StartDate.Format(planner.DateLayout)
	}
	return name + ".pdf"
}

// WriteFile exports plan to path, creating parent directories. A failed
// export leaves no partial file behind.
func WriteFile(path string, plan planner.Plan, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Export(f, plan, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
