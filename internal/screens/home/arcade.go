package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/theme"
)

const arcadeTitle = "M · U · M · S · K · I · D · S"

func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(arcadeTitle))
}

// renderStatsBar shows lifetime totals in a double-bordered box.
func renderStatsBar(sessions, rewards, cw int, compact bool) string {
	sessionStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	rewardStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			sessionStyle.Render(fmt.Sprintf("★%d", sessions)),
			rewardStyle.Render(fmt.Sprintf("🎁%d", rewards)))
	} else {
		stats = fmt.Sprintf("%s    %s",
			sessionStyle.Render(fmt.Sprintf("★ %d PLAYED", sessions)),
			rewardStyle.Render(fmt.Sprintf("🎁 %d REWARDS", rewards)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderDetail describes the highlighted practice under the menu.
func renderDetail(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}

func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(v))
}
