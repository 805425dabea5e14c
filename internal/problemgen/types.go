package problemgen

import (
	"fmt"
	"strings"
)

// Tier bounds operand and result magnitude for a practice.
type Tier string

const (
	TierWithin10  Tier = "within10"
	TierWithin20  Tier = "within20"
	TierWithin50  Tier = "within50"
	TierWithin100 Tier = "within100"
)

// AllTiers returns all tiers from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{TierWithin10, TierWithin20, TierWithin50, TierWithin100}
}

// ParseTier parses a tier name. Bare numbers ("20") are accepted too.
func ParseTier(s string) (Tier, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllTiers() {
		if norm == string(t) || "within"+norm == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty tier %q", s)
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	if cfg, ok := tierConfigs[t]; ok {
		return fmt.Sprintf("Within %d", cfg.Max)
	}
	return string(t)
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierConfigs[t]
	return ok
}

// Operator is the arithmetic operator of a single question.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
)

// Mode selects which operators a practice draws from.
type Mode string

const (
	ModeAdd    Mode = "add"
	ModeSub    Mode = "sub"
	ModeAddSub Mode = "addsub"
)

// ParseMode parses a calculation mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAdd:
		return ModeAdd, nil
	case ModeSub:
		return ModeSub, nil
	case ModeAddSub, "mixed":
		return ModeAddSub, nil
	}
	return "", fmt.Errorf("unknown calculation mode %q", s)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeAdd || m == ModeSub || m == ModeAddSub
}

// DisplayName returns a human-readable label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeAdd:
		return "Addition"
	case ModeSub:
		return "Subtraction"
	case ModeAddSub:
		return "Addition & Subtraction"
	default:
		return string(m)
	}
}

// Question is a single generated arithmetic problem.
type Question struct {
	// Index is the 1-based position in the session or worksheet.
	Index int

	Operand1 int
	Operator Operator
	Operand2 int

	// Answer is always non-negative. For subtraction Operand1 >= Operand2.
	Answer int

	// Choices holds 4 distinct options when the question is asked as
	// multiple choice. Empty otherwise.
	Choices []int

	// CorrectIndex is the position of Answer within Choices.
	CorrectIndex int

	// Fallback is set when the attempt budget ran out and the question was
	// built without the carry/borrow preference.
	Fallback bool
}

// Text renders the expression, e.g. "7 + 5".
func (q *Question) Text() string {
	return fmt.Sprintf("%d %s %d", q.Operand1, q.Operator, q.Operand2)
}

// Prompt renders the expression with a blank, e.g. "7 + 5 = ?".
func (q *Question) Prompt() string {
	return q.Text() + " = ?"
}

// HasChoices reports whether the question is asked as multiple choice.
func (q *Question) HasChoices() bool {
	return len(q.Choices) > 0
}

// QuestionSet is an ordered sequence of questions.
type QuestionSet []Question
