package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type stubScreen struct {
	name   string
	width  int
	height int
	inits  int
}

func (s *stubScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	return s, nil
}

func (s *stubScreen) View() string {
	return s.name
}

func (s *stubScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func TestRouterPushAndPop(t *testing.T) {
	home := &stubScreen{name: "home"}
	router := New(home)
	router.SetSize(100, 40)

	if got := router.View(); got != "home" {
		t.Fatalf("View() = %q, want %q", got, "home")
	}

	logs := &stubScreen{name: "logs"}
	router.Push(logs)

	if got := router.View(); got != "logs" {
		t.Errorf("View() after push = %q, want %q", got, "logs")
	}
	if logs.width != 100 || logs.height != 40 {
		t.Errorf("pushed screen size = %dx%d, want 100x40", logs.width, logs.height)
	}
	if logs.inits != 1 {
		t.Errorf("pushed screen initialized %d times, want 1", logs.inits)
	}

	router.Pop()
	if got := router.View(); got != "home" {
		t.Errorf("View() after pop = %q, want %q", got, "home")
	}
}

func TestRouterPopKeepsLastScreen(t *testing.T) {
	router := New(&stubScreen{name: "home"})

	if cmd := router.Pop(); cmd != nil {
		t.Error("Pop() on a single-screen stack returned a command")
	}
	if got := router.View(); got != "home" {
		t.Errorf("View() = %q, want %q", got, "home")
	}
}

func TestRouterReplace(t *testing.T) {
	router := New(&stubScreen{name: "home"})

	next := &stubScreen{name: "next"}
	router.Replace(next)

	if got := router.View(); got != "next" {
		t.Errorf("View() after replace = %q, want %q", got, "next")
	}
	if next.inits != 1 {
		t.Errorf("replacement screen initialized %d times, want 1", next.inits)
	}
}

func TestRouterEscPopsStackedScreen(t *testing.T) {
	router := New(&stubScreen{name: "home"})
	router.Push(&stubScreen{name: "logs"})

	router.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if got := router.View(); got != "home" {
		t.Errorf("View() after esc = %q, want %q", got, "home")
	}
}
