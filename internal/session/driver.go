// Package session drives browser actions through the healing orchestrator:
// attempt the original selector, repair it through the configured provider
// when it fails, and keep a provenance record of every verified repair.
package session

import (
	"context"
	"fmt"
	"time"
)

// Handle is one resolved element, ready to receive actions.
type Handle interface {
	Click(ctx context.Context) error
	Fill(ctx context.Context, value string) error
	TextContent(ctx context.Context) (string, error)
	InnerText(ctx context.Context) (string, error)
	InputValue(ctx context.Context) (string, error)
	IsVisible(ctx context.Context) (bool, error)
}

// Driver is the automation backend the session acts through. One browser
// and document per session; implementations resolve selectors within the
// given bound and expose the live document markup for healing.
type Driver interface {
	Resolve(ctx context.Context, selector string, timeout time.Duration) (Handle, error)
	CurrentMarkup(ctx context.Context) (string, error)
}

// ResolveError reports that a selector did not resolve within its bound.
type ResolveError struct {
	Selector string
	Timeout  time.Duration
	Err      error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("selector %q did not resolve within %s: %v", e.Selector, e.Timeout, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }
