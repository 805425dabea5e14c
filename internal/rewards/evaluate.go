// Package rewards decides whether a finished session unlocks a reward and
// which reward is granted.
package rewards

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
)

// ErrUnknownReward is returned when a chosen reward is not configured.
var ErrUnknownReward = errors.New("unknown reward")

// ErrNotEligible is returned when a reward is claimed for a session that
// did not earn a pick.
var ErrNotEligible = errors.New("reward not earned")

// Result is the outcome of a finished session.
type Result struct {
	Correct  int
	Answered int
	Elapsed  time.Duration
}

// Accuracy returns the fraction of answered questions that were correct,
// or 0 if nothing was answered.
func (r Result) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

// ErrorRatePercent returns the share of wrong answers as a percentage,
// or 0 if nothing was answered.
func (r Result) ErrorRatePercent() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Answered-r.Correct) / float64(r.Answered) * 100
}

// Evaluate reports whether the result unlocks a reward.
//
// With no rewards configured it is always false. A nil condition requires
// the correct count to equal the answered count, so an empty 0/0 result
// qualifies. Otherwise the
// condition's own Mode selects the rule, independent of the practice's
// test mode; configurations are expected to keep the two in sync.
func Evaluate(rewards []practice.Reward, cond *practice.Condition, r Result) bool {
	if len(rewards) == 0 {
		return false
	}
	if cond == nil {
		return r.Correct == r.Answered
	}

	switch cond.Mode {
	case practice.TestNormal:
		return r.Correct >= cond.TargetCorrect &&
			r.Elapsed.Minutes() <= float64(cond.MaxTimeMinutes)
	case practice.TestTimed:
		return r.Correct >= cond.MinCorrect &&
			r.ErrorRatePercent() <= cond.MaxErrorRatePercent
	default:
		return false
	}
}

// Select picks the reward to grant.
//
// In random mode it draws uniformly from rewards. In choice mode an empty
// choiceID returns pending=true so the caller can let the child pick; a
// non-empty choiceID must name a configured reward.
//
// Select panics if rewards is empty; Evaluate never passes in that case.
func Select(rng *rand.Rand, rewards []practice.Reward, mode practice.DistributionMode, choiceID string) (reward practice.Reward, pending bool, err error) {
	if len(rewards) == 0 {
		panic("rewards: Select called with no configured rewards")
	}

	if mode == practice.DistributeChoice {
		if choiceID == "" {
			return practice.Reward{}, true, nil
		}
		for _, r := range rewards {
			if r.ID == choiceID {
				return r, false, nil
			}
		}
		return practice.Reward{}, false, fmt.Errorf("%w: %q", ErrUnknownReward, choiceID)
	}

	return rewards[rng.IntN(len(rewards))], false, nil
}
