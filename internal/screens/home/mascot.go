package home

import (
	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default
	MascotCelebrating                      // Last session unlocked a reward
	MascotSleepy                           // Nothing to practice yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ + − │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ + − │
└─╥═╥─┘
  ╚═╝`

const mascotSleepy = `┌─────┐
│ - - │ z
│  ▽  │
│ + − │
└─────┘`

// RenderMascot returns the mascot art for v.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.ArcadeYellow
	case MascotSleepy:
		art, fg = mascotSleepy, theme.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
