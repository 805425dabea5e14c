package store

import (
	"context"
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// PracticeRepo stores practice configurations.
type PracticeRepo interface {
	// Create stores a new practice. The practice must already be valid.
	Create(ctx context.Context, p *practice.Practice) error

	// Get returns the practice with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*practice.Practice, error)

	// List returns practices, newest first.
	List(ctx context.Context, opts QueryOpts) ([]*practice.Practice, error)

	// Delete removes a practice, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID         string
	PracticeID        string
	Action            string // "start" or "end"
	TestMode          string
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSecs      int
	RewardEligible    bool
}

// AnswerEventData captures a single answered question.
type AnswerEventData struct {
	SessionID      string
	QuestionIndex  int
	QuestionText   string
	CorrectAnswer  int
	LearnerAnswer  string
	Correct        bool
	TimeMs         int64
	MultipleChoice bool
	Fallback       bool
}

// RewardEventData captures a reward granted at session end.
type RewardEventData struct {
	SessionID    string
	PracticeID   string
	RewardID     string
	RewardText   string
	Emoji        string
	Distribution string
}

// RewardEventRecord is a stored reward event.
type RewardEventRecord struct {
	RewardEventData
	Sequence  int64
	Timestamp time.Time
}

// SessionSummaryRecord summarizes a completed session.
type SessionSummaryRecord struct {
	SessionID         string
	PracticeID        string
	Timestamp         time.Time
	TestMode          string
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSecs      int
	RewardEligible    bool
	RewardText        string // empty if no reward was granted
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answered question.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendRewardEvent records a granted reward.
	AppendRewardEvent(ctx context.Context, data RewardEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryRewardEvents returns reward events, newest first.
	QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error)

	// RewardCounts returns how often each reward text was granted, and the total.
	RewardCounts(ctx context.Context) (map[string]int, int, error)

	// QuerySessionSummaries returns completed sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)
}
