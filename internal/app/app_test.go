package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
)

type stubScreen struct {
	title  string
	status string
	keys   []string
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Title() string { return s.title }
func (s *stubScreen) Status() string {
	return s.status
}
func (s *stubScreen) View(int, int) string { return "body of " + s.title }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}

type hintedScreen struct{ stubScreen }

func (s *hintedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Y", Description: "Stop"}}
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := sized(newAppModel(&stubScreen{title: "Home"}))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_EscReachesScreen(t *testing.T) {
	root := &stubScreen{title: "Home"}
	child := &stubScreen{title: "Quiz"}
	m := sized(newAppModel(root))
	m.router.Push(child)

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, []string{"esc"}, child.keys)
	assert.Equal(t, 2, m.router.Depth(), "the app must not pop on its own")

	m.Update(router.PopScreenMsg{})
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_ViewShowsStatusAndHints(t *testing.T) {
	s := &hintedScreen{stubScreen{title: "Sums", status: "Q 3/10"}}
	m := sized(newAppModel(s))

	view := m.render()
	assert.Contains(t, view, "Sums")
	assert.Contains(t, view, "Q 3/10")
	assert.Contains(t, view, "body of Sums")
	assert.Contains(t, view, "Stop")
}

func TestApp_TooSmall(t *testing.T) {
	m := newAppModel(&stubScreen{title: "Home"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	view := next.(AppModel).render()
	assert.True(t, strings.Contains(view, "Window too small"))
}
