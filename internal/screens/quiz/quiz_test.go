package quiz

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/summary"
	sess "github.com/million-dollar-projects/mumskids-sub000/internal/session"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
	rewards  []store.RewardEventData
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	m.sessions = append(m.sessions, d)
	return nil
}
func (m *mockEventRepo) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	m.answers = append(m.answers, d)
	return nil
}
func (m *mockEventRepo) AppendRewardEvent(_ context.Context, d store.RewardEventData) error {
	m.rewards = append(m.rewards, d)
	return nil
}
func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryRewardEvents(_ context.Context, _ store.QueryOpts) ([]store.RewardEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) RewardCounts(_ context.Context) (map[string]int, int, error) {
	return nil, 0, nil
}
func (m *mockEventRepo) QuerySessionSummaries(_ context.Context, _ store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, nil
}

// fakeClock is advanced by tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuiz(p *practice.Practice) (*QuizScreen, *mockEventRepo, *fakeClock) {
	repo := &mockEventRepo{}
	clock := &fakeClock{t: time.Date(2026, 10, 19, 16, 0, 0, 0, time.UTC)}
	s := newQuiz(p, Env{Events: repo, Locale: "en"}, problemgen.NewSeeded(5), clock.Now)
	return s, repo, clock
}

func normalPractice(n int) *practice.Practice {
	p := practice.New("Sums")
	p.Tier = problemgen.TierWithin20
	p.QuestionCount = n
	p.Rewards = []practice.Reward{{ID: "sticker", Text: "Sticker"}}
	return p
}

// typeAnswer types digits one key at a time and presses Enter.
func typeAnswer(t *testing.T, s screen.Screen, answer int) (screen.Screen, tea.Cmd) {
	t.Helper()
	for _, r := range strconv.Itoa(answer) {
		s, _ = s.Update(keyPress(r))
	}
	return s.Update(specialKey(tea.KeyEnter))
}

func mustRun(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestQuiz_FullNormalSession(t *testing.T) {
	s, repo, clock := testQuiz(normalPractice(2))

	if s.Title() != "Sums" {
		t.Errorf("Title = %q", s.Title())
	}
	if got := s.Status(); got != "Q 1/2   ✓ 0" {
		t.Errorf("Status = %q", got)
	}
	q1 := *s.state.CurrentQuestion
	if !strings.Contains(s.View(80, 24), q1.Prompt()) {
		t.Error("question view should show the prompt")
	}

	clock.Advance(4 * time.Second)
	var scr screen.Screen
	scr, cmd := typeAnswer(t, s, q1.Answer)
	mustRun(t, cmd) // records the answer
	if s.state.Phase != sess.PhaseFeedback || !s.last.Correct {
		t.Fatalf("expected correct feedback, phase %v", s.state.Phase)
	}
	if !strings.Contains(scr.View(80, 24), "Correct!") {
		t.Error("feedback should say Correct!")
	}

	// Any key moves on.
	scr, _ = scr.Update(keyPress(' '))
	q2 := *s.state.CurrentQuestion
	if q2.Index != 2 {
		t.Fatalf("second question index = %d", q2.Index)
	}

	clock.Advance(4 * time.Second)
	scr, cmd = typeAnswer(t, scr, q2.Answer+1)
	mustRun(t, cmd)
	if !strings.Contains(scr.View(80, 24), "Not quite") {
		t.Error("feedback should say Not quite")
	}

	// Last question answered: the next key ends the session.
	_, cmd = scr.Update(keyPress(' '))
	if _, ok := mustRun(t, cmd).(sessionEndMsg); !ok {
		t.Fatal("expected sessionEndMsg")
	}
	_, cmd = scr.Update(sessionEndMsg{})
	concluded, ok := mustRun(t, cmd).(sessionConcludedMsg)
	if !ok {
		t.Fatal("expected sessionConcludedMsg")
	}
	if concluded.Outcome.Eligible {
		t.Error("1 of 2 correct should not meet the default condition")
	}

	_, cmd = scr.Update(concluded)
	replace, ok := mustRun(t, cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := replace.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement is %T, want summary", replace.Screen)
	}

	if len(repo.answers) != 2 || !repo.answers[0].Correct || repo.answers[1].Correct {
		t.Errorf("answers recorded: %+v", repo.answers)
	}
	if repo.answers[0].TimeMs != 4000 {
		t.Errorf("answer time = %d ms", repo.answers[0].TimeMs)
	}
	if len(repo.sessions) != 1 || repo.sessions[0].Action != "end" || repo.sessions[0].DurationSecs != 8 {
		t.Errorf("session events: %+v", repo.sessions)
	}
}

func TestQuiz_RewardGrantedAndRecorded(t *testing.T) {
	s, repo, _ := testQuiz(normalPractice(1))

	var scr screen.Screen = s
	scr, _ = typeAnswer(t, scr, s.state.CurrentQuestion.Answer)
	_, cmd := scr.Update(keyPress('x'))
	_, cmd = scr.Update(mustRun(t, cmd))
	concluded := mustRun(t, cmd).(sessionConcludedMsg)

	if !concluded.Outcome.Eligible || concluded.Outcome.Reward == nil {
		t.Fatalf("perfect quick session should earn the reward: %+v", concluded.Outcome)
	}
	if len(repo.rewards) != 1 || repo.rewards[0].RewardID != "sticker" {
		t.Errorf("reward events: %+v", repo.rewards)
	}
	if !repo.sessions[0].RewardEligible {
		t.Error("end event should be marked eligible")
	}
}

func TestQuiz_BlankAnswerIgnored(t *testing.T) {
	s, _, _ := testQuiz(normalPractice(3))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil || s.state.Phase != sess.PhaseActive {
		t.Error("Enter on an empty answer should do nothing")
	}
	s.Update(keyPress('a'))
	if s.input.Value() != "" {
		t.Errorf("letters should be ignored, got %q", s.input.Value())
	}
}

func TestQuiz_QuitConfirm(t *testing.T) {
	s, _, _ := testQuiz(normalPractice(5))

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	if !s.confirmQuit || !strings.Contains(scr.View(80, 24), "Stop practicing now?") {
		t.Fatal("expected quit confirmation")
	}
	scr, _ = scr.Update(keyPress('n'))
	if s.confirmQuit {
		t.Error("N should dismiss the dialog")
	}

	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if _, ok := mustRun(t, cmd).(sessionEndMsg); !ok {
		t.Error("Y should end the session")
	}
}

func TestQuiz_MultipleChoice(t *testing.T) {
	p := normalPractice(3)
	p.MultipleChoice = true
	s, repo, _ := testQuiz(p)

	q := *s.state.CurrentQuestion
	if !q.HasChoices() {
		t.Fatal("expected choices")
	}
	_, cmd := s.Update(keyPress(rune('1' + q.CorrectIndex)))
	mustRun(t, cmd)
	if !s.last.Correct {
		t.Error("picking the correct option should be correct")
	}
	if repo.answers[0].LearnerAnswer != strconv.Itoa(q.Answer) {
		t.Errorf("recorded answer %q, want the option value %d", repo.answers[0].LearnerAnswer, q.Answer)
	}
}

func TestQuiz_TimedGrace(t *testing.T) {
	p := practice.New("Race")
	p.TestMode = practice.TestTimed
	p.TimeLimitMinutes = 1
	s, _, clock := testQuiz(p)

	if got := s.Status(); !strings.HasPrefix(got, "⏱ 1:00") {
		t.Errorf("Status = %q", got)
	}

	// Time runs out while a question is on screen: it may still be answered.
	clock.Advance(61 * time.Second)
	s.Update(timerTickMsg(clock.Now()))
	if !s.state.TimeExpired || s.ending {
		t.Fatal("expected expiry without ending")
	}
	if !strings.Contains(s.View(80, 24), "Time's up! Finish this one.") {
		t.Error("expected the finish-this-one banner")
	}

	// The grace period runs out too.
	clock.Advance(sess.InFlightGrace)
	_, cmd := s.Update(timerTickMsg(clock.Now()))
	if _, ok := mustRun(t, cmd).(sessionEndMsg); !ok {
		t.Error("expected the session to end after the grace period")
	}
}

func TestQuiz_TimedAnswerAfterExpiryEnds(t *testing.T) {
	p := practice.New("Race")
	p.TestMode = practice.TestTimed
	p.TimeLimitMinutes = 1
	s, _, clock := testQuiz(p)

	clock.Advance(65 * time.Second)
	var scr screen.Screen = s
	scr, _ = typeAnswer(t, scr, s.state.CurrentQuestion.Answer)
	if !strings.Contains(scr.View(80, 24), "Time's up!") {
		t.Error("feedback should mention the time")
	}
	_, cmd := scr.Update(keyPress(' '))
	if _, ok := mustRun(t, cmd).(sessionEndMsg); !ok {
		t.Error("expected end after the in-flight answer")
	}
}

func TestQuiz_InvalidPractice(t *testing.T) {
	p := normalPractice(0)
	s, repo, _ := testQuiz(p)
	if s.Init() != nil {
		t.Error("invalid practice should not start")
	}
	if !strings.Contains(s.View(80, 24), "Error") {
		t.Error("expected an error view")
	}
	_, cmd := s.Update(keyPress('q'))
	if _, ok := mustRun(t, cmd).(router.PopToRootMsg); !ok {
		t.Error("any key should go home")
	}
	if len(repo.sessions) != 0 {
		t.Error("nothing should be recorded")
	}
}
