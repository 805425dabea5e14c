package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	sess "github.com/million-dollar-projects/mumskids-sub000/internal/session"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/components"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.ending:
		return layout.Center(width, theme.Hint, "\n\n\nAdding up your score...")
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.state.Phase == sess.PhaseFeedback:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.state.CurrentQuestion
	if q == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderProgress(width))
	b.WriteString("\n\n")

	if deco := s.themeEmoji(); deco != "" {
		b.WriteString(layout.Center(width, lipgloss.NewStyle(), deco))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Center(width, theme.Problem, components.ArcadeCard(q.Prompt(), min(width-4, 30))))
	b.WriteString("\n\n")

	if s.mcActive() {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	} else {
		b.WriteString(layout.Center(width, theme.Body, "Answer: "+s.input.View()))
	}

	if s.state.TimeExpired {
		b.WriteString("\n\n")
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
			"Time's up! Finish this one."))
	}
	return b.String()
}

// renderProgress draws the question or time bar under the header.
func (s *QuizScreen) renderProgress(width int) string {
	p := s.state.Practice
	barWidth := min(width-8, 50)

	var bar components.ProgressBar
	if p.TestMode == practice.TestTimed {
		limit := p.TimeLimit()
		left := sess.RemainingTime(s.state, s.now())
		bar = components.NewProgressBar("Time", float64(left)/float64(limit), false, barWidth)
		bar.Low = limit > 0 && left*5 < limit
	} else {
		done := float64(s.state.TotalAnswered) / float64(max(p.QuestionCount, 1))
		bar = components.NewProgressBar("Done", done, true, barWidth)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View())
}

func (s *QuizScreen) renderFeedback(width int) string {
	rec := s.last
	if rec == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")
	if rec.Correct {
		b.WriteString(layout.Center(width, theme.Correct, "Correct!"))
	} else {
		b.WriteString(layout.Center(width, theme.Incorrect, "Not quite"))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Hint, "You answered "+rec.Given()))
	}
	b.WriteString("\n\n")

	q := rec.Question
	b.WriteString(layout.Center(width, theme.Problem,
		components.ArcadeCard(fmt.Sprintf("%s = %d", q.Text(), q.Answer), min(width-4, 30))))
	b.WriteString("\n\n")

	if s.state.TimeExpired {
		b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true), "Time's up!"))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Center(width, theme.Hint, "Press any key to continue..."))
	return b.String()
}

// themeEmoji returns the decoration for the practice theme, if any.
func (s *QuizScreen) themeEmoji() string {
	id := s.state.Practice.Theme
	if id == "" {
		return ""
	}
	info, ok := s.env.Catalog.Resolve(id, s.env.Locale)
	if !ok || info.Emoji == "" {
		return ""
	}
	return strings.Repeat(info.Emoji+" ", 3)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "Stop practicing now?"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Hint, "Your answers so far still count."))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, stop"))
	b.WriteString("\n")
	b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error),
		fmt.Sprintf("\n\n\nError: %s\n\nPress any key to go back.", errMsg))
}
