package readiness

import (
	"errors"
	"fmt"
	"time"
)

// DefaultDelay is the pause between two failed probes.
const DefaultDelay = time.Second

// Policy bounds the probe loop. MaxAttempts == 0 means no bound.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultPolicy retries forever with a one second pause.
func DefaultPolicy() Policy {
	return Policy{Delay: DefaultDelay}
}

func (p Policy) Validate() error {
	if p.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must not be negative, got %d", p.MaxAttempts)
	}
	if p.Delay < 0 {
		return errors.New("delay must not be negative")
	}
	return nil
}

// Bounded reports whether the policy has a maximum number of attempts.
func (p Policy) Bounded() bool {
	return p.MaxAttempts > 0
}

// describeDelay renders whole seconds the way the progress line expects.
func describeDelay(d time.Duration) string {
	if d > 0 && d%time.Second == 0 {
		n := int64(d / time.Second)
		if n == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", n)
	}
	return d.String()
}
