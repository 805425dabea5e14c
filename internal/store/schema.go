package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	tablePractices     = "practices"
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
	tableRewardEvents  = "reward_events"
	tableLLMEvents     = "llm_request_events"
)

var (
	practicesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "title", Type: field.TypeString},
		{Name: "tier", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString},
		{Name: "carry", Type: field.TypeBool, Default: false},
		{Name: "borrow", Type: field.TypeBool, Default: false},
		{Name: "test_mode", Type: field.TypeString},
		{Name: "question_count", Type: field.TypeInt, Default: 0},
		{Name: "time_limit_minutes", Type: field.TypeInt, Default: 0},
		{Name: "multiple_choice", Type: field.TypeBool, Default: false},
		{Name: "distribution", Type: field.TypeString, Default: ""},
		{Name: "theme", Type: field.TypeString, Default: ""},
		{Name: "rewards", Type: field.TypeJSON, Nullable: true},
		{Name: "condition", Type: field.TypeJSON, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
	}
	practicesTable = &schema.Table{
		Name:       tablePractices,
		Columns:    practicesColumns,
		PrimaryKey: []*schema.Column{practicesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "practice_created_at", Columns: []*schema.Column{practicesColumns[14]}},
		},
	}

	sessionEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "practice_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "test_mode", Type: field.TypeString},
		&schema.Column{Name: "questions_answered", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "reward_eligible", Type: field.TypeBool, Default: false},
	)
	sessionEventsTable = eventTable(tableSessionEvents, sessionEventsColumns, "session_id")

	answerEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_index", Type: field.TypeInt},
		&schema.Column{Name: "question_text", Type: field.TypeString},
		&schema.Column{Name: "correct_answer", Type: field.TypeInt},
		&schema.Column{Name: "learner_answer", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64},
		&schema.Column{Name: "multiple_choice", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "fallback", Type: field.TypeBool, Default: false},
	)
	answerEventsTable = eventTable(tableAnswerEvents, answerEventsColumns, "session_id")

	rewardEventsColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "practice_id", Type: field.TypeString},
		&schema.Column{Name: "reward_id", Type: field.TypeString},
		&schema.Column{Name: "reward_text", Type: field.TypeString},
		&schema.Column{Name: "emoji", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "distribution", Type: field.TypeString},
	)
	rewardEventsTable = eventTable(tableRewardEvents, rewardEventsColumns, "reward_id")

	llmEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
	)
	llmEventsTable = eventTable(tableLLMEvents, llmEventsColumns, "purpose")

	tables = []*schema.Table{
		practicesTable,
		sessionEventsTable,
		answerEventsTable,
		rewardEventsTable,
		llmEventsTable,
	}
)

// eventColumns prepends the columns every event table shares: an
// auto-increment id, the global sequence number and the timestamp.
func eventColumns(cols ...*schema.Column) []*schema.Column {
	base := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, cols...)
}

// eventTable builds an event table indexed by timestamp and by one
// lookup column.
func eventTable(name string, cols []*schema.Column, lookup string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
	for _, c := range cols {
		if c.Name == lookup {
			t.Indexes = append(t.Indexes, &schema.Index{Name: name + "_" + lookup, Columns: []*schema.Column{c}})
		}
	}
	return t
}
