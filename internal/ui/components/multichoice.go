package components

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/theme"
)

// MultiChoice picks one of a few numeric options. Digits 1-4 choose
// directly; arrows plus Enter also work.
type MultiChoice struct {
	Choices   []int
	Selected  int
	Submitted bool
}

// NewMultiChoice creates a selector over choices.
func NewMultiChoice(choices []int) MultiChoice {
	return MultiChoice{Choices: choices}
}

// Update handles a key. It reports submitted=true on the key that
// completes the choice.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Submitted || len(m.Choices) == 0 {
		return m, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k", "left", "h":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j", "right", "l":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		return m, true
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(m.Choices) {
			m.Selected = int(key[0] - '1')
			m.Submitted = true
			return m, true
		}
	}
	return m, false
}

// Value returns the value of the selected option. Submitting the value
// rather than the option number keeps the answer unambiguous when an
// option's value is itself a small number.
func (m MultiChoice) Value() string {
	if m.Selected < 0 || m.Selected >= len(m.Choices) {
		return ""
	}
	return strconv.Itoa(m.Choices[m.Selected])
}

// View renders the options on one row.
func (m MultiChoice) View() string {
	cells := make([]string, len(m.Choices))
	for i, c := range m.Choices {
		label := fmt.Sprintf(" %d)  %d ", i+1, c)
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
		if i == m.Selected {
			style = style.
				Bold(true).
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				BorderForeground(theme.ArcadeYellow)
		} else {
			style = style.
				Foreground(theme.Text).
				BorderForeground(theme.Border)
		}
		cells[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
