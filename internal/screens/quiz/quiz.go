// Package quiz is the screen that runs one practice session.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
	"github.com/million-dollar-projects/mumskids-sub000/internal/router"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screen"
	"github.com/million-dollar-projects/mumskids-sub000/internal/screens/summary"
	sess "github.com/million-dollar-projects/mumskids-sub000/internal/session"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/components"
	"github.com/million-dollar-projects/mumskids-sub000/internal/ui/layout"
)

// Env holds the collaborators a quiz needs. Events may be nil.
type Env struct {
	Events  store.EventRepo
	Rewards *rewards.Service
	Catalog *rewards.Catalog
	Locale  string
}

// QuizScreen runs a practice: one question at a time, feedback after
// each answer, then the summary.
type QuizScreen struct {
	env      Env
	state    *sess.SessionState
	recorder *sess.Recorder
	input    components.AnswerInput
	mc       components.MultiChoice

	// last is the most recent answer, shown during feedback.
	last *sess.AnswerRecord

	confirmQuit bool
	ending      bool
	errMsg      string

	now func() time.Time
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New prepares a session of p with a fresh random generator.
func New(p *practice.Practice, env Env) *QuizScreen {
	return newQuiz(p, env, problemgen.NewRandom(), time.Now)
}

func newQuiz(p *practice.Practice, env Env, gen *problemgen.Generator, now func() time.Time) *QuizScreen {
	if env.Rewards == nil {
		env.Rewards = rewards.NewService(nil, env.Events)
	}
	if env.Catalog == nil {
		env.Catalog = rewards.DefaultCatalog()
	}
	s := &QuizScreen{
		env:      env,
		state:    sess.NewSessionState(p, gen, uuid.NewString(), now()),
		recorder: sess.NewRecorder(env.Events),
		now:      now,
	}
	if err := p.Validate(); err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.nextQuestion()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.errMsg != "" {
		return nil
	}
	state := s.state
	return tea.Batch(
		func() tea.Msg {
			if err := s.recorder.Start(context.Background(), state); err != nil {
				slog.Warn("quiz: record start", "session", state.SessionID, "err", err)
			}
			return nil
		},
		s.input.Init(),
		tickCmd(),
	)
}

func (s *QuizScreen) Title() string {
	return s.state.Practice.Title
}

// Status shows progress in the header: questions for normal sessions,
// the clock for timed ones.
func (s *QuizScreen) Status() string {
	correct := fmt.Sprintf("✓ %d", s.state.TotalCorrect)
	if s.state.Practice.TestMode == practice.TestTimed {
		return fmt.Sprintf("⏱ %s   %s", clock(sess.RemainingTime(s.state, s.now())), correct)
	}
	answered := min(s.state.TotalAnswered+1, s.state.Practice.QuestionCount)
	if s.state.Phase == sess.PhaseFeedback {
		answered = s.state.TotalAnswered
	}
	return fmt.Sprintf("Q %d/%d   %s", answered, s.state.Practice.QuestionCount, correct)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop"},
			{Key: "N", Description: "Keep going"},
		}
	case s.state.Phase == sess.PhaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Next"}}
	case s.state.CurrentQuestion != nil && s.state.CurrentQuestion.HasChoices():
		return []layout.KeyHint{
			{Key: "1-4", Description: "Pick"},
			{Key: "←→", Description: "Move"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Esc", Description: "Stop"},
		}
	}
	return []layout.KeyHint{
		{Key: "0-9", Description: "Type"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Stop"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick(time.Time(msg))
	case sessionEndMsg:
		return s.handleEnd()
	case sessionConcludedMsg:
		return s.handleConcluded(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and other input messages.
	if s.state.Phase == sess.PhaseActive && !s.confirmQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleTick(now time.Time) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" || s.ending || s.state.Phase == sess.PhaseEnded {
		return s, nil
	}
	sess.Tick(s.state, now)

	// A timed session ends on its own only while a question is waiting
	// and its grace period has run out. During feedback the next key
	// press ends it.
	if s.state.Phase == sess.PhaseActive && !s.confirmQuit && sess.ShouldEnd(s.state, now) {
		return s, endCmd()
	}
	return s, tickCmd()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	}
	if s.ending {
		return s, nil
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, endCmd()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.state.Phase == sess.PhaseFeedback {
		return s.advance()
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.mcActive() {
		var done bool
		s.mc, done = s.mc.Update(msg)
		if done {
			return s.submit(s.mc.Value())
		}
		return s, nil
	}

	if key == "enter" {
		return s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit checks the answer and switches to feedback.
func (s *QuizScreen) submit(input string) (screen.Screen, tea.Cmd) {
	rec := sess.HandleAnswer(s.state, input, s.now())
	if rec == nil {
		return s, nil
	}
	s.last = rec

	state := s.state
	return s, func() tea.Msg {
		if err := s.recorder.Answer(context.Background(), state, rec); err != nil {
			slog.Warn("quiz: record answer", "session", state.SessionID, "err", err)
		}
		return nil
	}
}

// advance leaves feedback for the next question or the end.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if sess.ShouldEnd(s.state, s.now()) {
		return s, endCmd()
	}
	s.nextQuestion()
	return s, s.input.Init()
}

func (s *QuizScreen) nextQuestion() {
	q := sess.Next(s.state, s.now())
	if q == nil {
		return
	}
	s.mc = components.NewMultiChoice(q.Choices)
	s.input = components.NewAnswerInput("?", answerDigits(s.state.Practice.Tier))
}

func (s *QuizScreen) mcActive() bool {
	q := s.state.CurrentQuestion
	return q != nil && q.HasChoices()
}

// handleEnd freezes the session and evaluates it in the background.
func (s *QuizScreen) handleEnd() (screen.Screen, tea.Cmd) {
	if s.ending {
		return s, nil
	}
	s.ending = true
	sess.End(s.state, s.now())

	state, svc, recorder := s.state, s.env.Rewards, s.recorder
	return s, func() tea.Msg {
		ctx := context.Background()
		out, err := svc.Conclude(ctx, state.SessionID, state.Practice, sess.Result(state))
		if rerr := recorder.End(ctx, state, out.Eligible); rerr != nil {
			slog.Warn("quiz: record end", "session", state.SessionID, "err", rerr)
		}
		return sessionConcludedMsg{Outcome: out, Err: err}
	}
}

func (s *QuizScreen) handleConcluded(msg sessionConcludedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// The outcome is still usable; only the reward bookkeeping failed.
		slog.Warn("quiz: conclude", "session", s.state.SessionID, "err", msg.Err)
	}
	next := summary.New(summary.Params{
		Practice:  s.state.Practice,
		SessionID: s.state.SessionID,
		Summary:   sess.BuildSummary(s.state),
		Outcome:   msg.Outcome,
		Rewards:   s.env.Rewards,
	})
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// answerDigits is the widest answer a tier can produce.
func answerDigits(t problemgen.Tier) int {
	return len(fmt.Sprint(t.Max()))
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func endCmd() tea.Cmd {
	return func() tea.Msg { return sessionEndMsg{} }
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
