package session

import (
	"strings"
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

// Next generates and displays the next question. In addsub mode each
// question flips its own coin for the operator. Returns nil once the
// session has ended.
func Next(state *SessionState, now time.Time) *problemgen.Question {
	if state.Phase == PhaseEnded {
		return nil
	}

	p := state.Practice
	q := state.Gen.Generate(problemgen.Request{
		Tier:     p.Tier,
		Operator: state.Gen.ResolveOperator(p.Mode),
		Carry:    p.Carry,
		Borrow:   p.Borrow,
	})
	if p.MultipleChoice {
		q = state.Gen.WithChoices(q, p.Tier.Max())
	}

	state.Served++
	q.Index = state.Served
	if q.Fallback {
		state.FallbackCount++
	}

	state.CurrentQuestion = &q
	state.QuestionStartTime = now
	state.Phase = PhaseActive
	state.LastAnswerCorrect = false
	return state.CurrentQuestion
}

// HandleAnswer records the learner's answer to the current question and
// moves to the feedback phase. Blank input and calls outside the active
// phase are ignored. Returns the record, or nil if nothing was recorded.
func HandleAnswer(state *SessionState, input string, now time.Time) *AnswerRecord {
	q := state.CurrentQuestion
	if q == nil || state.Phase != PhaseActive || strings.TrimSpace(input) == "" {
		return nil
	}

	correct := problemgen.CheckAnswer(input, q)
	state.TotalAnswered++
	if correct {
		state.TotalCorrect++
	}
	state.LastAnswerCorrect = correct

	rec := AnswerRecord{
		Question: *q,
		Input:    strings.TrimSpace(input),
		Correct:  correct,
		Duration: now.Sub(state.QuestionStartTime),
	}
	state.Answers = append(state.Answers, rec)
	state.Phase = PhaseFeedback
	Tick(state, now)
	return &rec
}

// Tick updates the elapsed time and, for timed sessions, the expiry flag.
func Tick(state *SessionState, now time.Time) {
	if state.Phase == PhaseEnded {
		return
	}
	state.Elapsed = now.Sub(state.StartTime)
	if limit := state.Practice.TimeLimit(); limit > 0 && state.Elapsed >= limit {
		state.TimeExpired = true
	}
}

// ShouldEnd reports whether the session is over.
//
// Normal sessions end once QuestionCount questions are answered. Timed
// sessions end at the time limit, except that a question already on
// screen may still be answered within InFlightGrace.
func ShouldEnd(state *SessionState, now time.Time) bool {
	if state.Phase == PhaseEnded {
		return true
	}
	p := state.Practice
	if p.TestMode != practice.TestTimed {
		return state.TotalAnswered >= p.QuestionCount
	}

	Tick(state, now)
	if !state.TimeExpired {
		return false
	}
	if state.Phase == PhaseActive && state.CurrentQuestion != nil {
		return state.Elapsed >= p.TimeLimit()+InFlightGrace
	}
	return true
}

// End moves the session to its terminal phase and freezes the elapsed time.
func End(state *SessionState, now time.Time) {
	if state.Phase == PhaseEnded {
		return
	}
	Tick(state, now)
	state.Phase = PhaseEnded
}

// RemainingQuestions returns how many questions are left in a normal
// session, or -1 for timed sessions.
func RemainingQuestions(state *SessionState) int {
	p := state.Practice
	if p.TestMode == practice.TestTimed {
		return -1
	}
	return max(0, p.QuestionCount-state.TotalAnswered)
}

// RemainingTime returns the time left in a timed session, or 0 for
// normal sessions.
func RemainingTime(state *SessionState, now time.Time) time.Duration {
	limit := state.Practice.TimeLimit()
	if limit == 0 {
		return 0
	}
	return max(0, limit-now.Sub(state.StartTime))
}
