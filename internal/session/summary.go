package session

import (
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	Duration         time.Duration
	TotalAnswered    int
	TotalCorrect     int
	Accuracy         float64
	ErrorRatePercent float64
	Stars            int
	FallbackCount    int

	// Mistakes lists the wrongly answered questions in order.
	Mistakes []AnswerRecord
}

// Result converts the session counters into the evaluator's input.
func Result(state *SessionState) rewards.Result {
	return rewards.Result{
		Correct:  state.TotalCorrect,
		Answered: state.TotalAnswered,
		Elapsed:  state.Elapsed,
	}
}

// BuildSummary creates a SessionSummary from the current session state.
func BuildSummary(state *SessionState) *SessionSummary {
	r := Result(state)

	var mistakes []AnswerRecord
	for _, a := range state.Answers {
		if !a.Correct {
			mistakes = append(mistakes, a)
		}
	}

	return &SessionSummary{
		Duration:         state.Elapsed,
		TotalAnswered:    state.TotalAnswered,
		TotalCorrect:     state.TotalCorrect,
		Accuracy:         r.Accuracy(),
		ErrorRatePercent: r.ErrorRatePercent(),
		Stars:            rewards.Stars(r.Accuracy()),
		FallbackCount:    state.FallbackCount,
		Mistakes:         mistakes,
	}
}
