package session

import (
	"strconv"
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

// SessionPhase represents the current phase of the session.
type SessionPhase int

const (
	PhaseActive   SessionPhase = iota // Waiting for an answer
	PhaseFeedback                     // Showing answer feedback
	PhaseEnded                        // Finished; results are final
)

// InFlightGrace is how long a timed session waits for the question that
// was on screen when time ran out.
const InFlightGrace = 30 * time.Second

// AnswerRecord is one answered question.
type AnswerRecord struct {
	Question problemgen.Question
	Input    string
	Correct  bool
	Duration time.Duration
}

// Given returns what the learner answered as a value. Multiple-choice
// input that only makes sense as an option number is mapped to that
// option.
func (r AnswerRecord) Given() string {
	q := r.Question
	n, err := problemgen.ParseAnswer(r.Input)
	if err != nil {
		return r.Input
	}
	return strconv.Itoa(q.ResolveChoice(n))
}

// SessionState tracks the runtime state of a running practice.
type SessionState struct {
	// SessionID is the UUID for this session.
	SessionID string

	// Practice is the read-only configuration being run.
	Practice *practice.Practice

	// Gen generates this session's questions. Each session owns its own.
	Gen *problemgen.Generator

	// CurrentQuestion is the question on screen (nil before the first).
	CurrentQuestion *problemgen.Question

	// Served is the count of questions generated so far.
	Served int

	TotalAnswered int
	TotalCorrect  int

	// FallbackCount is how many questions ignored the carry/borrow
	// preference because no candidate satisfied it.
	FallbackCount int

	Answers []AnswerRecord

	// StartTime is when the session began.
	StartTime time.Time

	// Elapsed is the time since StartTime as of the last update.
	Elapsed time.Duration

	// QuestionStartTime is when the current question was first displayed.
	QuestionStartTime time.Time

	Phase SessionPhase

	// LastAnswerCorrect records whether the most recent answer was correct.
	LastAnswerCorrect bool

	// TimeExpired is set once a timed session reaches its limit.
	TimeExpired bool
}

// NewSessionState creates the state for a new session of p.
func NewSessionState(p *practice.Practice, gen *problemgen.Generator, sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		Practice:  p,
		Gen:       gen,
		StartTime: now,
		Phase:     PhaseActive,
	}
}
