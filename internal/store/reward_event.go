package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	return r.appendEvent(ctx, tableRewardEvents,
		[]string{"session_id", "practice_id", "reward_id", "reward_text", "emoji", "distribution"},
		[]any{data.SessionID, data.PracticeID, data.RewardID, data.RewardText, data.Emoji, data.Distribution},
	)
}

func (r *eventRepo) QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error) {
	b := builder()
	t := b.Table(tableRewardEvents)
	sel := b.Select(
		t.C("session_id"), t.C("practice_id"), t.C("reward_id"), t.C("reward_text"),
		t.C("emoji"), t.C("distribution"), t.C("sequence"), t.C("timestamp"),
	).
		From(t).
		OrderBy(entsql.Desc(t.C("sequence")))
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var records []RewardEventRecord
	for rows.Next() {
		var rec RewardEventRecord
		if err := rows.Scan(
			&rec.SessionID, &rec.PracticeID, &rec.RewardID, &rec.RewardText,
			&rec.Emoji, &rec.Distribution, &rec.Sequence, &rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) RewardCounts(ctx context.Context) (map[string]int, int, error) {
	b := builder()
	t := b.Table(tableRewardEvents)
	query, args := b.Select(t.C("reward_text"), entsql.As(entsql.Count("*"), "n")).
		From(t).
		GroupBy(t.C("reward_text")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query reward counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			text string
			n    int
		)
		if err := rows.Scan(&text, &n); err != nil {
			return nil, 0, fmt.Errorf("scan reward count: %w", err)
		}
		counts[text] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("query reward counts: %w", err)
	}
	return counts, total, nil
}
