package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

type fakeEvents struct {
	store.EventRepo
	sessions []store.SessionSummaryRecord
	rewards  []store.RewardEventRecord
	err      error
}

func (f *fakeEvents) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return f.sessions, f.err
}

func (f *fakeEvents) QueryRewardEvents(_ context.Context, _ store.QueryOpts) ([]store.RewardEventRecord, error) {
	return f.rewards, nil
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistory_ListAndExpand(t *testing.T) {
	ts := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	events := &fakeEvents{
		sessions: []store.SessionSummaryRecord{
			{SessionID: "s2", TestMode: "normal", Timestamp: ts, QuestionsAnswered: 10, CorrectAnswers: 10, DurationSecs: 125, RewardEligible: true, RewardText: "Park"},
			{SessionID: "s1", TestMode: "timed", Timestamp: ts.Add(-time.Hour), QuestionsAnswered: 8, CorrectAnswers: 4, DurationSecs: 300},
		},
		rewards: []store.RewardEventRecord{
			{RewardEventData: store.RewardEventData{SessionID: "s2", RewardText: "Park", Emoji: "🌳", Distribution: "choice"}},
		},
	}
	s := New(events)
	assert.Contains(t, s.View(80, 24), "Loading")

	load(t, s)
	view := s.View(100, 24)
	assert.Contains(t, view, "10/10 correct")
	assert.Contains(t, view, "2:05")
	assert.Contains(t, view, "🎁 Park")
	assert.NotContains(t, view, "choice")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 24), "🌳 Park (choice)")

	s.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 24), "No reward this session")
}

func TestHistory_Empty(t *testing.T) {
	s := New(&fakeEvents{})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "No sessions yet")
}

func TestHistory_Error(t *testing.T) {
	s := New(&fakeEvents{err: errors.New("disk gone")})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "disk gone")
}

func TestHistory_EscPops(t *testing.T) {
	s := New(&fakeEvents{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestLine(t *testing.T) {
	rec := store.SessionSummaryRecord{
		TestMode:          "normal",
		Timestamp:         time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local),
		QuestionsAnswered: 0,
		DurationSecs:      61,
	}
	line := Line(rec)
	assert.True(t, strings.HasPrefix(line, "Oct 19 09:30"))
	assert.Contains(t, line, "1:01")
	assert.Contains(t, line, "0/0 correct")
	assert.NotContains(t, line, "🎁")
}
