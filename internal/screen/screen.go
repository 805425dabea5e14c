package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
)

// Screen is one page of the terminal UI.
type Screen interface {
	// Init returns a command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles a message and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, without header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a status on the
// right side of the header, such as quiz progress.
type StatusProvider interface {
	Status() string
}
