// Package history lists past sessions, newest first.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/theme"
)

// Limit is how many sessions are loaded.
const Limit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummaryRecord
	Rewards  map[string][]store.RewardEventRecord // by session ID
	Err      error
}

// HistoryScreen displays past sessions and the rewards they unlocked.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummaryRecord
	rewards   map[string][]store.RewardEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := repo.QuerySessionSummaries(ctx, store.QueryOpts{Limit: Limit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		bySession := make(map[string][]store.RewardEventRecord)
		events, err := repo.QueryRewardEvents(ctx, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Sessions: sessions, Rewards: bySession}
		}
		for _, e := range events {
			bySession[e.SessionID] = append(bySession[e.SessionID], e)
		}
		return historyLoadedMsg{Sessions: sessions, Rewards: bySession}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.rewards = msg.Rewards
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return layout.Center(width, theme.Hint, "\n\nLoading history...")
	}
	if len(s.sessions) == 0 {
		return layout.Center(width, theme.Hint, "\n\nNo sessions yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+Line(rec))))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderRewards(rec.SessionID, width))
		}
	}
	return b.String()
}

func (s *HistoryScreen) renderRewards(sessionID string, width int) string {
	events := s.rewards[sessionID]
	if len(events) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("    No reward this session")) + "\n"
	}
	var b strings.Builder
	for _, e := range events {
		line := fmt.Sprintf("    🎁 %s (%s)", rewardLabel(e.RewardEventData), e.Distribution)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Stars.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// Line renders one session as a single row, shared with the CLI.
func Line(rec store.SessionSummaryRecord) string {
	var accuracy float64
	if rec.QuestionsAnswered > 0 {
		accuracy = float64(rec.CorrectAnswers) / float64(rec.QuestionsAnswered)
	}
	line := fmt.Sprintf("%s  %-6s  %d:%02d  %d/%d correct  %s",
		rec.Timestamp.Local().Format("Jan 02 15:04"),
		rec.TestMode,
		rec.DurationSecs/60, rec.DurationSecs%60,
		rec.CorrectAnswers, rec.QuestionsAnswered,
		rewards.StarLine(rewards.Stars(accuracy)))
	if rec.RewardText != "" {
		line += "  🎁 " + rec.RewardText
	}
	return line
}

func rewardLabel(d store.RewardEventData) string {
	if d.Emoji == "" {
		return d.RewardText
	}
	return d.Emoji + " " + d.RewardText
}
