package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// The retry protocol is a four-state machine per action invocation.
type state int

const (
	// stateDirect attempts the original selector, no healing involved.
	stateDirect state = iota
	// stateHealing asks the provider for a replacement and attempts it.
	// Later attempts are seeded with the previous attempt's failed
	// suggestion, so the provider always sees the most recent failure.
	stateHealing
	// stateHealed is terminal success.
	stateHealed
	// stateFailed is terminal failure.
	stateFailed
)

// perform runs one action through the retry protocol. A healing event is
// appended only after the replacement selector resolved and the wrapped
// action completed without error; an untried suggestion never reaches the
// log.
func (s *Session) perform(ctx context.Context, action, selector string, do func(context.Context, Handle) error) error {
	var (
		st        = stateDirect
		candidate = selector // seeds the next provider call
		attempt   int
		lastErr   error
		termErr   error
	)

	for {
		switch st {
		case stateDirect:
			err := s.attempt(ctx, candidate, do)
			if err == nil {
				// Success on the original selector: no healing occurred,
				// no event recorded.
				return nil
			}
			if s.provider == nil {
				termErr = fmt.Errorf("%w: %s %q: %v", ErrHealingDisabled, action, selector, err)
				st = stateFailed
				break
			}
			s.log.Debug("selector failed, healing",
				zap.String("action", action),
				zap.String("selector", selector),
				zap.Error(err))
			lastErr = err
			st = stateHealing

		case stateHealing:
			snapshot, err := s.driver.CurrentMarkup(ctx)
			if err != nil {
				termErr = fmt.Errorf("markup snapshot for healing %q: %w", selector, err)
				st = stateFailed
				break
			}

			suggestion, err := s.provider.Suggest(ctx, candidate, snapshot)
			if err != nil {
				// Provider failures propagate immediately; the provider is
				// never retried on its own error.
				termErr = fmt.Errorf("healing %q via %s: %w", selector, s.provider.Name(), err)
				st = stateFailed
				break
			}

			err = s.attempt(ctx, suggestion, do)
			if err == nil {
				s.events = append(s.events, Event{
					Original:  selector,
					Healed:    suggestion,
					Action:    action,
					Timestamp: time.Now(),
					Provider:  s.provider.Name(),
				})
				s.log.Info("selector healed",
					zap.String("action", action),
					zap.String("original", selector),
					zap.String("healed", suggestion),
					zap.String("provider", s.provider.Name()))
				st = stateHealed
				break
			}

			lastErr = err
			candidate = suggestion
			attempt++
			if attempt >= s.maxRetries {
				termErr = &ExhaustedError{Original: selector, Retries: s.maxRetries, Last: lastErr}
				st = stateFailed
			}

		case stateHealed:
			return nil

		case stateFailed:
			return termErr
		}
	}
}

// attempt resolves the selector within the locator timeout and runs the
// wrapped action against it.
func (s *Session) attempt(ctx context.Context, selector string, do func(context.Context, Handle) error) error {
	h, err := s.driver.Resolve(ctx, selector, s.timeout)
	if err != nil {
		return err
	}
	return do(ctx, h)
}
