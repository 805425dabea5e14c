// Package app hosts the Bubble Tea program: a router of screens inside a
// shared header and footer.
package app

import (
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/home"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/quiz"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int

	// startCmd initialises a screen pushed before the program started.
	startCmd tea.Cmd
}

// newAppModel creates a new AppModel rooted at root.
func newAppModel(root screen.Screen) AppModel {
	return AppModel{
		router: router.New(root),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Init(), m.startCmd)
}

// Update handles window size and ctrl+c. Everything else, esc included,
// belongs to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render lays out the active screen between the header and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the TUI on the home screen and blocks until the user quits.
// When start is set, its quiz opens on top of home.
func Run(practices store.PracticeRepo, env quiz.Env, start *practice.Practice) error {
	m := newAppModel(home.New(practices, env))
	if start != nil {
		m.startCmd = m.router.Push(quiz.New(start, env))
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("tui exited", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
