package notice

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eduwise/eduwise/internal/router"
)

func TestAnyKeyPops(t *testing.T) {
	n := New("Plans", "No plans yet.")
	_, cmd := n.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestErrorView(t *testing.T) {
	n := NewError("Export", errors.New("disk full"))
	if !strings.Contains(n.View(80, 20), "disk full") {
		t.Error("expected error text in view")
	}
	if n.Title() != "Export" {
		t.Errorf("Title = %q", n.Title())
	}
}
