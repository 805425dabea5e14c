package practice

import (
	"fmt"
	"math"
)

// Condition is the threshold a session must meet to unlock a reward.
// Only the fields for Mode are meaningful.
type Condition struct {
	Mode TestMode `toml:"mode" json:"mode"`

	// Normal mode.
	TargetCorrect  int `toml:"target_correct,omitempty" json:"target_correct,omitempty"`
	MaxTimeMinutes int `toml:"max_time_minutes,omitempty" json:"max_time_minutes,omitempty"`

	// Timed mode.
	MinCorrect          int     `toml:"min_correct,omitempty" json:"min_correct,omitempty"`
	MaxErrorRatePercent float64 `toml:"max_error_rate_percent,omitempty" json:"max_error_rate_percent,omitempty"`
}

// DefaultTimedErrorRate is the error-rate ceiling of a derived timed condition.
const DefaultTimedErrorRate = 20

// DefaultCondition derives a condition from the test parameters.
//
// Normal: 80% of the questions correct within half a minute per question.
// Timed: 70% of three questions per minute, at least 5, with at most 20%
// wrong answers.
func DefaultCondition(mode TestMode, questionCount, timeLimitMinutes int) Condition {
	if mode == TestTimed {
		return Condition{
			Mode:                TestTimed,
			MinCorrect:          max(5, ceilFrac(timeLimitMinutes*3, 0.7)),
			MaxErrorRatePercent: DefaultTimedErrorRate,
		}
	}
	return Condition{
		Mode:           TestNormal,
		TargetCorrect:  max(1, ceilFrac(questionCount, 0.8)),
		MaxTimeMinutes: max(1, ceilFrac(questionCount, 0.5)),
	}
}

// EffectiveCondition returns the configured condition, or the derived
// default when none is set.
func (p *Practice) EffectiveCondition() Condition {
	if p.Condition != nil {
		return *p.Condition
	}
	return DefaultCondition(p.TestMode, p.QuestionCount, p.TimeLimitMinutes)
}

// Describe renders the condition for a child, e.g.
// "Get 8 right in 5 minutes or less".
func (c Condition) Describe() string {
	if c.Mode == TestTimed {
		return fmt.Sprintf("Get at least %d right with no more than %s%% wrong",
			c.MinCorrect, trimFloat(c.MaxErrorRatePercent))
	}
	return fmt.Sprintf("Get %d right in %d minutes or less", c.TargetCorrect, c.MaxTimeMinutes)
}

func trimFloat(f float64) string {
	return fmt.Sprintf("%g", math.Round(f*10)/10)
}

func (c *Condition) validate() error {
	switch c.Mode {
	case TestNormal:
		if c.TargetCorrect < 0 || c.MaxTimeMinutes < 0 {
			return invalid("normal condition thresholds must be non-negative")
		}
	case TestTimed:
		if c.MinCorrect < 0 {
			return invalid("min correct must be non-negative")
		}
		if c.MaxErrorRatePercent < 0 || c.MaxErrorRatePercent > 100 {
			return invalid("max error rate %.1f outside 0..100", c.MaxErrorRatePercent)
		}
	default:
		return invalid("unknown condition mode %q", c.Mode)
	}
	return nil
}

// ceilFrac returns ceil(n*f) without float drift for exact products.
func ceilFrac(n int, f float64) int {
	return int(math.Ceil(float64(n)*f - 1e-9))
}
