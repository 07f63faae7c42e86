package readiness

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionUnavailable is the only probe failure the gate retries.
	ErrConnectionUnavailable = errors.New("database unavailable")
	// ErrAttemptsExhausted is returned when a bounded policy runs out of attempts.
	ErrAttemptsExhausted = errors.New("database did not become available")
)

// Unavailable marks err as a connection failure the gate should retry.
func Unavailable(err error) error {
	if err == nil {
		return ErrConnectionUnavailable
	}
	return fmt.Errorf("%w: %w", ErrConnectionUnavailable, err)
}
