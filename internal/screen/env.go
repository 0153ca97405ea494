package screen

import (
	"context"

	"github.com/eduwise/eduwise/internal/pdfexport"
	"github.com/eduwise/eduwise/internal/session"
)

// Env is shared by every screen of one TUI run.
type Env struct {
	Service *session.Service
	State   *session.State

	// ExportDir is where plan PDFs are written. Empty means the working
	// directory.
	ExportDir string
	PDF       pdfexport.Options

	// Ctx bounds LLM and database calls started from the UI.
	Ctx context.Context
}

// Context returns e.Ctx, or context.Background when none was set.
func (e *Env) Context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}
