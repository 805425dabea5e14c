package rewards

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/million-dollar-projects/mumskids-sub000/internal/practice"
	"github.com/million-dollar-projects/mumskids-sub000/internal/store"
)

// Outcome is what the summary screen shows after a session.
type Outcome struct {
	Result    Result
	Condition practice.Condition
	Eligible  bool
	Stars     int

	// Reward is set once a reward has been granted.
	Reward *practice.Reward

	// Pending is true when the child still has to pick from Choices.
	Pending bool
	Choices []practice.Reward
}

// Service evaluates finished sessions and records granted rewards.
type Service struct {
	rng       *rand.Rand
	eventRepo store.EventRepo
}

// NewService creates a Service. eventRepo may be nil, in which case
// nothing is persisted.
func NewService(rng *rand.Rand, eventRepo store.EventRepo) *Service {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Service{rng: rng, eventRepo: eventRepo}
}

// Conclude evaluates a finished session. In random mode an eligible
// session is granted its reward immediately; in choice mode the outcome
// is pending until Claim.
func (s *Service) Conclude(ctx context.Context, sessionID string, p *practice.Practice, r Result) (Outcome, error) {
	cond := p.EffectiveCondition()
	out := Outcome{
		Result:    r,
		Condition: cond,
		Stars:     Stars(r.Accuracy()),
		Eligible:  Evaluate(p.Rewards, &cond, r),
	}
	if !out.Eligible {
		return out, nil
	}

	reward, pending, err := Select(s.rng, p.Rewards, p.Distribution, "")
	if err != nil {
		return out, err
	}
	if pending {
		out.Pending = true
		out.Choices = p.Rewards
		return out, nil
	}

	out.Reward = &reward
	return out, s.persist(ctx, sessionID, p, reward)
}

// Claim grants the reward the child picked in choice mode. out must be
// the pending outcome Conclude returned for the same session, and
// rewardID must name one of its Choices.
func (s *Service) Claim(ctx context.Context, sessionID string, p *practice.Practice, out Outcome, rewardID string) (practice.Reward, error) {
	if !out.Eligible || !out.Pending || len(out.Choices) == 0 {
		return practice.Reward{}, fmt.Errorf("%w: session %s has no reward to pick", ErrNotEligible, sessionID)
	}
	reward, _, err := Select(s.rng, out.Choices, practice.DistributeChoice, rewardID)
	if err != nil {
		return practice.Reward{}, err
	}
	return reward, s.persist(ctx, sessionID, p, reward)
}

func (s *Service) persist(ctx context.Context, sessionID string, p *practice.Practice, reward practice.Reward) error {
	if s.eventRepo == nil {
		return nil
	}
	err := s.eventRepo.AppendRewardEvent(ctx, store.RewardEventData{
		SessionID:    sessionID,
		PracticeID:   p.ID,
		RewardID:     reward.ID,
		RewardText:   reward.Text,
		Emoji:        reward.Emoji,
		Distribution: string(p.Distribution),
	})
	if err != nil {
		return fmt.Errorf("record reward: %w", err)
	}
	return nil
}
