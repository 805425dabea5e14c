package session

import (
	"context"
	"fmt"

	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

// Recorder persists session lifecycle events. A nil repo records nothing.
type Recorder struct {
	repo store.EventRepo
}

// NewRecorder creates a Recorder backed by repo.
func NewRecorder(repo store.EventRepo) *Recorder {
	return &Recorder{repo: repo}
}

// Start records the beginning of a session.
func (r *Recorder) Start(ctx context.Context, state *SessionState) error {
	if r == nil || r.repo == nil {
		return nil
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:  state.SessionID,
		PracticeID: state.Practice.ID,
		Action:     "start",
		TestMode:   string(state.Practice.TestMode),
	})
	if err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// Answer records one answered question.
func (r *Recorder) Answer(ctx context.Context, state *SessionState, rec *AnswerRecord) error {
	if r == nil || r.repo == nil || rec == nil {
		return nil
	}
	err := r.repo.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:      state.SessionID,
		QuestionIndex:  rec.Question.Index,
		QuestionText:   rec.Question.Text(),
		CorrectAnswer:  rec.Question.Answer,
		LearnerAnswer:  rec.Given(),
		Correct:        rec.Correct,
		TimeMs:         rec.Duration.Milliseconds(),
		MultipleChoice: rec.Question.HasChoices(),
		Fallback:       rec.Question.Fallback,
	})
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

// End records the end of a session and whether it unlocked a reward.
func (r *Recorder) End(ctx context.Context, state *SessionState, rewardEligible bool) error {
	if r == nil || r.repo == nil {
		return nil
	}
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         state.SessionID,
		PracticeID:        state.Practice.ID,
		Action:            "end",
		TestMode:          string(state.Practice.TestMode),
		QuestionsAnswered: state.TotalAnswered,
		CorrectAnswers:    state.TotalCorrect,
		DurationSecs:      int(state.Elapsed.Seconds()),
		RewardEligible:    rewardEligible,
	})
	if err != nil {
		return fmt.Errorf("record session end: %w", err)
	}
	return nil
}
