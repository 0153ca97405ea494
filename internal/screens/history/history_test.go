package history

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eduwise/eduwise/internal/screen/screentest"
)

func load(s *HistoryScreen) {
	screentest.Drain(s, s.Init())
}

func TestEmpty(t *testing.T) {
	f := screentest.New(t)
	s := New(f.Env)
	load(s)
	if !strings.Contains(s.View(100, 30), "No tests taken yet") {
		t.Error("expected empty-state message")
	}
}

func TestListAndExpand(t *testing.T) {
	f := screentest.New(t)
	f.SubmitResult(t, "Optics", 2, 1)
	f.SubmitResult(t, "Waves", 1, 0)
	s := New(f.Env)
	load(s)

	results := s.results()
	if len(results) != 2 || results[0].Questions[0].Topic != "Waves" {
		t.Fatalf("want newest (Waves) first, got %d results", len(results))
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(120, 40)
	if !s.expanded[results[1].ID] {
		t.Fatal("enter should expand the selected result")
	}
	if strings.Count(view, "✓") != 2 || strings.Count(view, "✗") != 1 {
		t.Errorf("expanded view should mark 2 right and 1 wrong:\n%s", view)
	}
	if !strings.Contains(view, "2 tests · 0 plans") {
		t.Error("expected summary line")
	}
}

func TestDeleteResult(t *testing.T) {
	f := screentest.New(t)
	f.SubmitResult(t, "Optics", 1, 1)
	s := New(f.Env)
	load(s)

	s.Update(screentest.Key('d'))
	if !s.CapturesEscape() {
		t.Fatal("expected confirmation")
	}
	_, cmd := s.Update(screentest.Key('y'))
	screentest.Drain(s, cmd)

	if len(s.results()) != 0 {
		t.Errorf("results after delete = %d, want 0", len(s.results()))
	}
	if f.Env.State.LastResult != nil {
		t.Error("deleting the last result should clear it from the state")
	}
}
