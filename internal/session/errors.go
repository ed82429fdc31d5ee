package session

import (
	"errors"
	"fmt"
)

// ErrHealingDisabled is returned when a selector fails to resolve and the
// session has no healing provider configured.
var ErrHealingDisabled = errors.New("selector failed to resolve and healing is disabled")

// ExhaustedError is the terminal error after every healing attempt failed.
type ExhaustedError struct {
	// Original is the selector from the very first attempt.
	Original string
	// Retries is the configured healing attempt bound.
	Retries int
	// Last is the most recent underlying failure.
	Last error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("healing exhausted for selector %q after %d attempt(s): %v", e.Original, e.Retries, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
