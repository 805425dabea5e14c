package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

var practiceSelectColumns = []string{
	"id", "title", "tier", "mode", "carry", "borrow", "test_mode",
	"question_count", "time_limit_minutes", "multiple_choice",
	"distribution", "theme", "rewards", "condition", "created_at",
}

// practiceRepo implements PracticeRepo.
type practiceRepo struct {
	db *sql.DB
}

func (r *practiceRepo) Create(ctx context.Context, p *practice.Practice) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	rewards, err := json.Marshal(p.Rewards)
	if err != nil {
		return fmt.Errorf("marshal rewards: %w", err)
	}
	var condition any
	if p.Condition != nil {
		b, err := json.Marshal(p.Condition)
		if err != nil {
			return fmt.Errorf("marshal condition: %w", err)
		}
		condition = b
	}

	query, args := builder().Insert(tablePractices).
		Columns(practiceSelectColumns...).
		Values(
			p.ID, p.Title, string(p.Tier), string(p.Mode), p.Carry, p.Borrow, string(p.TestMode),
			p.QuestionCount, p.TimeLimitMinutes, p.MultipleChoice,
			string(p.Distribution), p.Theme, rewards, condition, p.CreatedAt.UTC(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice: %w", err)
	}
	return nil
}

func (r *practiceRepo) Get(ctx context.Context, id string) (*practice.Practice, error) {
	b := builder()
	t := b.Table(tablePractices)
	query, args := b.Select(practiceSelectColumns...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	p, err := scanPractice(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("practice %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query practice: %w", err)
	}
	return p, nil
}

func (r *practiceRepo) List(ctx context.Context, opts QueryOpts) ([]*practice.Practice, error) {
	b := builder()
	t := b.Table(tablePractices)
	sel := b.Select(practiceSelectColumns...).
		From(t).
		OrderBy(entsql.Desc(t.C("created_at")))
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(t.C("created_at"), opts.From.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list practices: %w", err)
	}
	defer rows.Close()

	var out []*practice.Practice
	for rows.Next() {
		p, err := scanPractice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan practice: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *practiceRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete(tablePractices).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete practice: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete practice: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("practice %q: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPractice(row rowScanner) (*practice.Practice, error) {
	var (
		p                    practice.Practice
		tier, mode, testMode string
		distribution         string
		rewards, condition   []byte
	)
	err := row.Scan(
		&p.ID, &p.Title, &tier, &mode, &p.Carry, &p.Borrow, &testMode,
		&p.QuestionCount, &p.TimeLimitMinutes, &p.MultipleChoice,
		&distribution, &p.Theme, &rewards, &condition, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Tier = problemgen.Tier(tier)
	p.Mode = problemgen.Mode(mode)
	p.TestMode = practice.TestMode(testMode)
	p.Distribution = practice.DistributionMode(distribution)

	if len(rewards) > 0 {
		if err := json.Unmarshal(rewards, &p.Rewards); err != nil {
			return nil, fmt.Errorf("unmarshal rewards: %w", err)
		}
	}
	if len(condition) > 0 {
		var c practice.Condition
		if err := json.Unmarshal(condition, &c); err != nil {
			return nil, fmt.Errorf("unmarshal condition: %w", err)
		}
		p.Condition = &c
	}
	return &p, nil
}
