// Package practice defines the immutable configuration of a practice
// session and validates it before anything is generated or evaluated.
package practice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/million-dollar-projects/mumskids-sub000/internal/problemgen"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid practice configuration")

const (
	MinQuestionCount   = 1
	MinUIQuestionCount = 5
	MaxQuestionCount   = 100

	MinTimeLimitMinutes = 1
	MaxTimeLimitMinutes = 60
)

// TestMode selects how a session ends.
type TestMode string

const (
	// TestNormal ends after a fixed number of questions.
	TestNormal TestMode = "normal"

	// TestTimed generates questions on demand until the time limit passes.
	TestTimed TestMode = "timed"
)

func (m TestMode) Valid() bool {
	return m == TestNormal || m == TestTimed
}

// ParseTestMode parses a test mode name.
func ParseTestMode(s string) (TestMode, error) {
	m := TestMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown test mode %q", s)
	}
	return m, nil
}

// DistributionMode selects how an earned reward is chosen.
type DistributionMode string

const (
	DistributeRandom DistributionMode = "random"
	DistributeChoice DistributionMode = "choice"
)

func (m DistributionMode) Valid() bool {
	return m == DistributeRandom || m == DistributeChoice
}

// ParseDistributionMode parses a distribution mode name.
func ParseDistributionMode(s string) (DistributionMode, error) {
	m := DistributionMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("unknown reward distribution %q", s)
	}
	return m, nil
}

// Reward is something a child can unlock at the end of a session.
type Reward struct {
	ID    string `toml:"id" json:"id"`
	Text  string `toml:"text" json:"text"`
	Emoji string `toml:"emoji,omitempty" json:"emoji,omitempty"`
}

// Label renders the reward for display, e.g. "🍦 Ice cream".
func (r Reward) Label() string {
	if r.Emoji == "" {
		return r.Text
	}
	return r.Emoji + " " + r.Text
}

// Practice is the read-only configuration for running sessions.
type Practice struct {
	ID    string `toml:"id,omitempty" json:"id"`
	Title string `toml:"title" json:"title"`

	Tier   problemgen.Tier `toml:"tier" json:"tier"`
	Mode   problemgen.Mode `toml:"mode" json:"mode"`
	Carry  bool            `toml:"carry" json:"carry"`
	Borrow bool            `toml:"borrow" json:"borrow"`

	TestMode         TestMode `toml:"test_mode" json:"test_mode"`
	QuestionCount    int      `toml:"question_count,omitempty" json:"question_count,omitempty"`
	TimeLimitMinutes int      `toml:"time_limit_minutes,omitempty" json:"time_limit_minutes,omitempty"`

	// MultipleChoice asks each question with four options instead of
	// free numeric input.
	MultipleChoice bool `toml:"multiple_choice" json:"multiple_choice"`

	Rewards      []Reward         `toml:"rewards,omitempty" json:"rewards,omitempty"`
	Distribution DistributionMode `toml:"distribution,omitempty" json:"distribution,omitempty"`
	Condition    *Condition       `toml:"condition,omitempty" json:"condition,omitempty"`

	// Theme is a catalog key used to decorate the quiz and story problems.
	Theme string `toml:"theme,omitempty" json:"theme,omitempty"`

	CreatedAt time.Time `toml:"-" json:"created_at"`
}

// New returns a practice with the usual defaults filled in and a fresh ID.
func New(title string) *Practice {
	return &Practice{
		ID:            uuid.NewString(),
		Title:         title,
		Tier:          problemgen.TierWithin10,
		Mode:          problemgen.ModeAdd,
		TestMode:      TestNormal,
		QuestionCount: 10,
		Distribution:  DistributeRandom,
	}
}

// HasRewards reports whether any reward is configured.
func (p *Practice) HasRewards() bool {
	return len(p.Rewards) > 0
}

// RewardByID returns the configured reward with the given ID.
func (p *Practice) RewardByID(id string) (Reward, bool) {
	for _, r := range p.Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

// TimeLimit returns the timed-mode duration, or zero in normal mode.
func (p *Practice) TimeLimit() time.Duration {
	if p.TestMode != TestTimed {
		return 0
	}
	return time.Duration(p.TimeLimitMinutes) * time.Minute
}

// SetRequest returns the generator parameters for a batch of n questions.
func (p *Practice) SetRequest(n int) problemgen.SetRequest {
	return problemgen.SetRequest{
		Tier:   p.Tier,
		Mode:   p.Mode,
		Count:  n,
		Carry:  p.Carry,
		Borrow: p.Borrow,
	}
}

// Summary renders a one-line description, e.g.
// "Within 20 · Addition · carry · 10 questions".
func (p *Practice) Summary() string {
	parts := []string{p.Tier.DisplayName(), p.Mode.DisplayName()}
	if p.Carry && p.Mode != problemgen.ModeSub {
		parts = append(parts, "carry")
	}
	if p.Borrow && p.Mode != problemgen.ModeAdd {
		parts = append(parts, "borrow")
	}
	if p.TestMode == TestTimed {
		parts = append(parts, fmt.Sprintf("%d min", p.TimeLimitMinutes))
	} else {
		parts = append(parts, fmt.Sprintf("%d questions", p.QuestionCount))
	}
	return strings.Join(parts, " · ")
}

// Validate checks the configuration before it is stored or run.
func (p *Practice) Validate() error {
	return p.validate(MinQuestionCount)
}

// ValidateForUI applies the stricter question-count floor used when a
// practice is created interactively.
func (p *Practice) ValidateForUI() error {
	return p.validate(MinUIQuestionCount)
}

func (p *Practice) validate(minQuestions int) error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("title is required")
	}
	if !p.Tier.Valid() {
		return invalid("unknown tier %q", p.Tier)
	}
	if !p.Mode.Valid() {
		return invalid("unknown calculation mode %q", p.Mode)
	}

	switch p.TestMode {
	case TestNormal:
		if p.QuestionCount < minQuestions || p.QuestionCount > MaxQuestionCount {
			return invalid("question count %d outside %d..%d", p.QuestionCount, minQuestions, MaxQuestionCount)
		}
	case TestTimed:
		if p.TimeLimitMinutes < MinTimeLimitMinutes || p.TimeLimitMinutes > MaxTimeLimitMinutes {
			return invalid("time limit %d outside %d..%d minutes", p.TimeLimitMinutes, MinTimeLimitMinutes, MaxTimeLimitMinutes)
		}
	default:
		return invalid("unknown test mode %q", p.TestMode)
	}

	seen := make(map[string]bool, len(p.Rewards))
	for i, r := range p.Rewards {
		if strings.TrimSpace(r.ID) == "" {
			return invalid("reward %d has no id", i+1)
		}
		if strings.TrimSpace(r.Text) == "" {
			return invalid("reward %q has no text", r.ID)
		}
		if seen[r.ID] {
			return invalid("duplicate reward id %q", r.ID)
		}
		seen[r.ID] = true
	}
	if p.HasRewards() && !p.Distribution.Valid() {
		return invalid("unknown reward distribution %q", p.Distribution)
	}

	if p.Condition != nil {
		if p.Condition.Mode != p.TestMode {
			return invalid("condition mode %q does not match test mode %q", p.Condition.Mode, p.TestMode)
		}
		if err := p.Condition.validate(); err != nil {
			return err
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
