// Package home is the root screen: it lists stored practices and links to
// history and the reward jar.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/history"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/quiz"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/rewardjar"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/components"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
)

// maxListed caps how many practices the menu shows.
const maxListed = 9

type homeLoadedMsg struct {
	Practices []*practice.Practice
	Sessions  int
	Rewards   int
	Celebrate bool
	Err       error
}

// HomeScreen is the practice picker.
type HomeScreen struct {
	practices store.PracticeRepo
	env       quiz.Env

	list     []*practice.Practice
	menu     components.Menu
	sessions int
	rewards  int
	mascot   MascotVariant
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen. env.Events may be nil, in which case the
// history and reward screens are disabled.
func New(practices store.PracticeRepo, env quiz.Env) *HomeScreen {
	h := &HomeScreen{practices: practices, env: env}
	h.menu = h.buildMenu()
	return h
}

// Init (re)loads the practice list. The router calls it again whenever
// the user comes back home.
func (h *HomeScreen) Init() tea.Cmd {
	practices, events := h.practices, h.env.Events
	return func() tea.Msg {
		ctx := context.Background()
		list, err := practices.List(ctx, store.QueryOpts{Limit: maxListed})
		if err != nil {
			return homeLoadedMsg{Err: err}
		}
		msg := homeLoadedMsg{Practices: list}
		if events == nil {
			return msg
		}
		recent, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: 1})
		if err == nil && len(recent) > 0 {
			msg.Celebrate = recent[0].RewardText != ""
		}
		all, err := events.QuerySessionSummaries(ctx, store.QueryOpts{})
		if err == nil {
			msg.Sessions = len(all)
		}
		if _, total, err := events.RewardCounts(ctx); err == nil {
			msg.Rewards = total
		}
		return msg
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(homeLoadedMsg); ok {
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.list = msg.Practices
		h.sessions = msg.Sessions
		h.rewards = msg.Rewards
		switch {
		case len(h.list) == 0:
			h.mascot = MascotSleepy
		case msg.Celebrate:
			h.mascot = MascotCelebrating
		default:
			h.mascot = MascotIdle
		}
		selected := h.menu.Selected
		h.menu = h.buildMenu()
		if selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
			h.menu.Selected = selected
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) buildMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(h.list)+3)
	for _, p := range h.list {
		items = append(items, components.MenuItem{
			Label: p.Title,
			Action: func() tea.Cmd {
				return push(quiz.New(p, h.env))
			},
		})
	}

	noEvents := h.env.Events == nil
	items = append(items,
		components.MenuItem{Label: "HISTORY", Disabled: noEvents, Action: func() tea.Cmd {
			return push(history.New(h.env.Events))
		}},
		components.MenuItem{Label: "REWARD JAR", Disabled: noEvents, Action: func() tea.Cmd {
			return push(rewardjar.New(h.env.Events))
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	return components.NewMenu(items)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw)}
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.sessions, h.rewards, cw, compact))

	switch {
	case h.errMsg != "":
		sections = append(sections, renderDetail("Could not load practices: "+h.errMsg, cw))
	case h.loaded && len(h.list) == 0:
		sections = append(sections, renderDetail("No practices yet. Ask a grown-up to run\nmumskids practice create", cw))
	}

	sections = append(sections, components.ArcadeMenu(h.menu, cw, compact))
	if p := h.highlighted(); p != nil {
		sections = append(sections, renderDetail(describe(p), cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

// highlighted returns the practice under the cursor, if any.
func (h *HomeScreen) highlighted() *practice.Practice {
	if h.menu.Selected < len(h.list) {
		return h.list[h.menu.Selected]
	}
	return nil
}

func describe(p *practice.Practice) string {
	s := p.Summary()
	if p.HasRewards() {
		s += fmt.Sprintf("\n🎁 %s", p.EffectiveCondition().Describe())
	}
	return s
}
