// Package summary shows the result of a finished practice and hands out
// the reward when one was earned.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/session"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/components"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/theme"
)

// maxMistakes caps the mistakes listed on screen.
const maxMistakes = 5

// Params is everything the summary needs from the finished session.
type Params struct {
	Practice  *practice.Practice
	SessionID string
	Summary   *session.SessionSummary
	Outcome   rewards.Outcome

	// Rewards claims the child's pick in choice mode.
	Rewards *rewards.Service
}

type rewardClaimedMsg struct {
	Reward practice.Reward
	Err    error
}

// SummaryScreen displays the session result.
type SummaryScreen struct {
	p       Params
	reward  *practice.Reward
	choices components.Menu
	picking bool
	errMsg  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen.
func New(p Params) *SummaryScreen {
	s := &SummaryScreen{p: p, reward: p.Outcome.Reward}
	if p.Outcome.Pending {
		s.picking = true
		items := make([]components.MenuItem, len(p.Outcome.Choices))
		for i, r := range p.Outcome.Choices {
			id := r.ID
			items[i] = components.MenuItem{
				Label:  r.Label(),
				Action: func() tea.Cmd { return s.claim(id) },
			}
		}
		s.choices = components.NewMenu(items)
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Well done!"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.picking {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Pick this one"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rewardClaimedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.picking = false
		s.reward = &msg.Reward
		return s, nil

	case tea.KeyMsg:
		if s.picking {
			var cmd tea.Cmd
			s.choices, cmd = s.choices.Update(msg)
			return s, cmd
		}
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// claim records the picked reward.
func (s *SummaryScreen) claim(id string) tea.Cmd {
	p := s.p
	return func() tea.Msg {
		r, err := p.Rewards.Claim(context.Background(), p.SessionID, p.Practice, p.Outcome, id)
		if err != nil {
			slog.Warn("summary: claim reward", "session", p.SessionID, "reward", id, "err", err)
		}
		return rewardClaimedMsg{Reward: r, Err: err}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.p.Summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Center(width, theme.Stars, starLine(sum.Stars)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Answered: %d     Correct: %d     Accuracy: %.0f%%     Time: %s",
		sum.TotalAnswered, sum.TotalCorrect, sum.Accuracy*100, clock(sum))
	b.WriteString(layout.Center(width, theme.Body, stats))
	b.WriteString("\n")

	if sum.FallbackCount > 0 {
		b.WriteString(layout.Center(width, theme.Hint,
			fmt.Sprintf("%d question(s) could not follow the carry/borrow setting.", sum.FallbackCount)))
		b.WriteString("\n")
	}

	if len(sum.Mistakes) > 0 {
		b.WriteString("\n")
		b.WriteString(section(width, "Let's look again"))
		for i, m := range sum.Mistakes {
			if i == maxMistakes {
				b.WriteString(layout.Center(width, theme.Hint,
					fmt.Sprintf("...and %d more", len(sum.Mistakes)-maxMistakes)))
				b.WriteString("\n")
				break
			}
			line := fmt.Sprintf("%s = %d   (you said %s)", m.Question.Text(), m.Question.Answer, m.Given())
			b.WriteString(layout.Center(width, lipgloss.NewStyle().Foreground(theme.Text), line))
			b.WriteString("\n")
		}
	}

	if r := s.renderReward(width); r != "" {
		b.WriteString("\n")
		b.WriteString(r)
	}
	return b.String()
}

func (s *SummaryScreen) renderReward(width int) string {
	out := s.p.Outcome
	if !s.p.Practice.HasRewards() {
		return ""
	}

	var b strings.Builder
	b.WriteString(section(width, "Reward"))
	switch {
	case s.errMsg != "":
		b.WriteString(layout.Center(width, theme.Incorrect, "Could not save the reward: "+s.errMsg))
	case s.picking:
		b.WriteString(layout.Center(width, theme.Correct, "You earned a reward! Pick one:"))
		b.WriteString("\n\n")
		b.WriteString(components.ArcadeMenu(s.choices, min(width, 60), layout.IsCompact(width, 30)))
	case s.reward != nil:
		b.WriteString(layout.Center(width, theme.Correct, "You unlocked a reward!"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.ArcadeCard(theme.Stars.Render(s.reward.Label()), min(width-4, 40))))
	case !out.Eligible:
		b.WriteString(layout.Center(width, theme.Hint, "No reward this time. Next time:"))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Body, out.Condition.Describe()))
	}
	return b.String()
}

func section(width int, title string) string {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 50)))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)) +
		"\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) + "\n\n"
}

func starLine(stars int) string {
	return strings.Join(strings.Split(rewards.StarLine(stars), ""), " ")
}

func clock(sum *session.SessionSummary) string {
	secs := int(sum.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
