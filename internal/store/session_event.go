package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.appendEvent(ctx, tableSessionEvents,
		[]string{"session_id", "practice_id", "action", "test_mode", "questions_answered", "correct_answers", "duration_secs", "reward_eligible"},
		[]any{data.SessionID, data.PracticeID, data.Action, data.TestMode, data.QuestionsAnswered, data.CorrectAnswers, data.DurationSecs, data.RewardEligible},
	)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.appendEvent(ctx, tableAnswerEvents,
		[]string{"session_id", "question_index", "question_text", "correct_answer", "learner_answer", "correct", "time_ms", "multiple_choice", "fallback"},
		[]any{data.SessionID, data.QuestionIndex, data.QuestionText, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs, data.MultipleChoice, data.Fallback},
	)
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	b := builder()
	t := b.Table(tableSessionEvents)
	sel := b.Select(
		t.C("session_id"), t.C("practice_id"), t.C("timestamp"), t.C("test_mode"),
		t.C("questions_answered"), t.C("correct_answers"), t.C("duration_secs"), t.C("reward_eligible"),
	).
		From(t).
		Where(entsql.EQ(t.C("action"), "end")).
		OrderBy(entsql.Desc(t.C("sequence")))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(
			&rec.SessionID, &rec.PracticeID, &rec.Timestamp, &rec.TestMode,
			&rec.QuestionsAnswered, &rec.CorrectAnswers, &rec.DurationSecs, &rec.RewardEligible,
		); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}

	// Attach the reward granted in each session, if any.
	for i := range records {
		text, err := r.sessionReward(ctx, records[i].SessionID)
		if err != nil {
			return nil, err
		}
		records[i].RewardText = text
	}
	return records, nil
}

func (r *eventRepo) sessionReward(ctx context.Context, sessionID string) (string, error) {
	b := builder()
	t := b.Table(tableRewardEvents)
	query, args := b.Select(t.C("reward_text")).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(entsql.Desc(t.C("sequence"))).
		Limit(1).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("query session reward: %w", err)
	}
	defer rows.Close()

	var text string
	if rows.Next() {
		if err := rows.Scan(&text); err != nil {
			return "", fmt.Errorf("scan session reward: %w", err)
		}
	}
	return text, rows.Err()
}
