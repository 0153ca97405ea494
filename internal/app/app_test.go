package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/eduwise/eduwise/internal/router"
	"github.com/eduwise/eduwise/internal/screen"
	"github.com/eduwise/eduwise/internal/screen/screentest"
	"github.com/eduwise/eduwise/internal/screens/home"
)

type captureScreen struct{ capture bool }

func (c *captureScreen) Init() tea.Cmd                          { return nil }
func (c *captureScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return c, nil }
func (c *captureScreen) View(int, int) string                   { return "capture" }
func (c *captureScreen) Title() string                          { return "Capture" }
func (c *captureScreen) CapturesEscape() bool                   { return c.capture }

func sized(t *testing.T, w, h int) AppModel {
	t.Helper()
	f := screentest.New(t)
	m := newAppModel(f.Env)
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(AppModel)
}

func TestTooSmall(t *testing.T) {
	m := sized(t, 60, 20)
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected resize message below the minimum size")
	}
}

func TestFrame(t *testing.T) {
	m := sized(t, 100, 30)
	out := m.render()
	if !strings.Contains(out, "EduWise") || !strings.Contains(out, "tester") {
		t.Error("header should show the app name and user")
	}
	if !strings.Contains(out, "Ctrl+C") {
		t.Error("footer should always offer quit")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := sized(t, 100, 30)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestEscPopsUnlessCaptured(t *testing.T) {
	m := sized(t, 100, 30)
	m.router.Replace(home.New(m.env))

	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("Esc on the root screen should not pop")
		}
	}

	top := &captureScreen{}
	m.router.Push(top)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	top.capture = true
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("a capturing screen should keep Esc")
		}
	}
}
