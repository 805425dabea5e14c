package quiz

import (
	"time"

	"github.com/million-dollar-projects/mumskids-sub000/internal/rewards"
)

// timerTickMsg is sent every second to refresh the clock.
type timerTickMsg time.Time

// sessionEndMsg starts the end-of-session flow.
type sessionEndMsg struct{}

// sessionConcludedMsg carries the evaluated outcome once the session has
// been recorded.
type sessionConcludedMsg struct {
	Outcome rewards.Outcome
	Err     error
}
