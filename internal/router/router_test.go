package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
)

type stubScreen struct {
	title    string
	initRuns int
	updates  int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRuns++
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	quiz := &stubScreen{title: "quiz"}
	r.Push(quiz)
	if r.Depth() != 2 || r.Active() != quiz {
		t.Fatalf("after push: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if quiz.initRuns != 1 {
		t.Errorf("pushed screen Init ran %d times, want 1", quiz.initRuns)
	}

	r.Pop()
	if r.Depth() != 1 || r.Active() != home {
		t.Errorf("after pop: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth = %d after popping the root, want 1", r.Depth())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "quiz"})

	summary := &stubScreen{title: "summary"}
	r.Update(ReplaceScreenMsg{Screen: summary})

	if r.Depth() != 2 {
		t.Errorf("depth = %d after replace, want 2", r.Depth())
	}
	if r.Active() != summary || summary.initRuns != 1 {
		t.Errorf("active = %q, init runs = %d", r.Active().Title(), summary.initRuns)
	}
}

func TestPopToRootReloadsRoot(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Init()
	r.Push(&stubScreen{title: "quiz"})
	r.Push(&stubScreen{title: "summary"})

	r.Update(PopToRootMsg{})

	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if home.initRuns != 2 {
		t.Errorf("root Init ran %d times, want 2", home.initRuns)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	quiz := &stubScreen{title: "quiz"}
	r := New(home)
	r.Push(quiz)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	if quiz.updates != 1 || home.updates != 0 {
		t.Errorf("updates: quiz %d, home %d", quiz.updates, home.updates)
	}
	if got := r.View(80, 24); got != "quiz" {
		t.Errorf("View = %q", got)
	}
}
