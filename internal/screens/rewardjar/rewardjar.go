// Package rewardjar shows every reward the learner has unlocked.
package rewardjar

import (
	"cmp"
	"context"
	"fmt"
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/theme"
)

type rewardsLoadedMsg struct {
	Records []store.RewardEventRecord
	Counts  map[string]int
	Total   int
	Err     error
}

// Tally is one reward and how often it was unlocked.
type Tally struct {
	Text  string
	Count int
}

// RewardJarScreen lists reward counts and the rewards themselves.
type RewardJarScreen struct {
	eventRepo    store.EventRepo
	records      []store.RewardEventRecord
	tallies      []Tally
	total        int
	selected     int // 0 is "All", then one tab per tally
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*RewardJarScreen)(nil)
var _ screen.KeyHintProvider = (*RewardJarScreen)(nil)

// New creates a new RewardJarScreen.
func New(eventRepo store.EventRepo) *RewardJarScreen {
	return &RewardJarScreen{eventRepo: eventRepo}
}

func (s *RewardJarScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()
		counts, total, err := repo.RewardCounts(ctx)
		if err != nil {
			return rewardsLoadedMsg{Err: err}
		}
		records, err := repo.QueryRewardEvents(ctx, store.QueryOpts{})
		return rewardsLoadedMsg{Records: records, Counts: counts, Total: total, Err: err}
	}
}

func (s *RewardJarScreen) Title() string {
	return "Reward Jar"
}

func (s *RewardJarScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch reward"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RewardJarScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case rewardsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
			s.tallies = SortCounts(msg.Counts)
			s.total = msg.Total
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		tabs := len(s.tallies) + 1
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.selected = (s.selected + 1) % tabs
			s.scrollOffset = 0
		case "shift+tab":
			s.selected = (s.selected - 1 + tabs) % tabs
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *RewardJarScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Center(width, lipgloss.NewStyle().Foreground(theme.Error), "\n\nError: "+s.errMsg)
	}
	if !s.loaded {
		return layout.Center(width, theme.Hint, "\n\nOpening the jar...")
	}
	if s.total == 0 {
		return layout.Center(width, theme.Hint, "\n\nThe jar is empty. Finish a practice to fill it!")
	}

	var b strings.Builder
	b.WriteString(layout.Center(width, theme.Stars, fmt.Sprintf("\n🫙 %d rewards unlocked\n", s.total)))
	b.WriteString("\n")

	tabs := []string{s.tab(0, fmt.Sprintf("All (%d)", s.total))}
	for i, t := range s.tallies {
		tabs = append(tabs, s.tab(i+1, fmt.Sprintf("%s (%d)", t.Text, t.Count)))
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(strings.Join(tabs, "   ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, rec := range filtered[start:end] {
		name := rec.RewardText
		if rec.Emoji != "" {
			name = rec.Emoji + " " + name
		}
		line := fmt.Sprintf("  %-28s %-7s %s", name, rec.Distribution, rec.Timestamp.Local().Format("Jan 02, 2006"))
		style := lipgloss.NewStyle().Foreground(distributionColor(rec.Distribution))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Hint, fmt.Sprintf("... %d more", len(filtered)-end)))
	}
	return b.String()
}

func (s *RewardJarScreen) tab(i int, label string) string {
	if i == s.selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}

func (s *RewardJarScreen) filtered() []store.RewardEventRecord {
	if s.selected == 0 || s.selected > len(s.tallies) {
		return s.records
	}
	text := s.tallies[s.selected-1].Text
	var out []store.RewardEventRecord
	for _, r := range s.records {
		if r.RewardText == text {
			out = append(out, r)
		}
	}
	return out
}

// SortCounts orders reward counts from most to least frequent, then by name.
func SortCounts(counts map[string]int) []Tally {
	out := make([]Tally, 0, len(counts))
	for text, n := range counts {
		out = append(out, Tally{Text: text, Count: n})
	}
	slices.SortFunc(out, func(a, b Tally) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Text, b.Text)
	})
	return out
}

func distributionColor(d string) color.Color {
	switch practice.DistributionMode(d) {
	case practice.DistributeChoice:
		return theme.Secondary
	case practice.DistributeRandom:
		return theme.ArcadeYellow
	default:
		return theme.Text
	}
}
