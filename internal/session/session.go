package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/v0xg/selfheal/internal/heal"
)

// Default bounds for one session.
const (
	DefaultMaxHealingRetries = 3
	DefaultLocatorTimeout    = 5 * time.Second
)

// Options configures one session. The zero value disables healing.
type Options struct {
	// Provider supplies replacement selectors. Nil disables healing: a
	// failed selector then fails the action immediately.
	Provider heal.Provider
	// MaxHealingRetries bounds healing attempts (and so provider calls)
	// per action, not wall-clock time.
	MaxHealingRetries int
	// LocatorTimeout bounds each individual resolution attempt.
	LocatorTimeout time.Duration
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Session owns the healing event log and the resolved provider for one
// test execution. Actions are serialized by contract: one browser, one
// document, one action in flight. A session must not be shared across
// concurrent test executions.
type Session struct {
	driver     Driver
	provider   heal.Provider
	maxRetries int
	timeout    time.Duration
	log        *zap.Logger
	events     []Event
}

// New builds a session over the automation driver.
func New(driver Driver, opts Options) *Session {
	if opts.MaxHealingRetries <= 0 {
		opts.MaxHealingRetries = DefaultMaxHealingRetries
	}
	if opts.LocatorTimeout <= 0 {
		opts.LocatorTimeout = DefaultLocatorTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Session{
		driver:     driver,
		provider:   opts.Provider,
		maxRetries: opts.MaxHealingRetries,
		timeout:    opts.LocatorTimeout,
		log:        opts.Logger,
	}
}

// Events returns the healing events recorded so far, in action order.
func (s *Session) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Click resolves the selector, healing it if needed, and clicks.
func (s *Session) Click(ctx context.Context, selector string) error {
	return s.perform(ctx, "click", selector, func(ctx context.Context, h Handle) error {
		return h.Click(ctx)
	})
}

// Fill resolves the selector, healing it if needed, and fills in value.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	return s.perform(ctx, "fill", selector, func(ctx context.Context, h Handle) error {
		return h.Fill(ctx, value)
	})
}

// TextContent returns the element's text content.
func (s *Session) TextContent(ctx context.Context, selector string) (string, error) {
	var out string
	err := s.perform(ctx, "textContent", selector, func(ctx context.Context, h Handle) error {
		v, err := h.TextContent(ctx)
		out = v
		return err
	})
	return out, err
}

// InnerText returns the element's rendered text.
func (s *Session) InnerText(ctx context.Context, selector string) (string, error) {
	var out string
	err := s.perform(ctx, "innerText", selector, func(ctx context.Context, h Handle) error {
		v, err := h.InnerText(ctx)
		out = v
		return err
	})
	return out, err
}

// InputValue returns the element's current input value.
func (s *Session) InputValue(ctx context.Context, selector string) (string, error) {
	var out string
	err := s.perform(ctx, "inputValue", selector, func(ctx context.Context, h Handle) error {
		v, err := h.InputValue(ctx)
		out = v
		return err
	})
	return out, err
}

// IsVisible reports whether the element is visible.
func (s *Session) IsVisible(ctx context.Context, selector string) (bool, error) {
	var out bool
	err := s.perform(ctx, "isVisible", selector, func(ctx context.Context, h Handle) error {
		v, err := h.IsVisible(ctx)
		out = v
		return err
	})
	return out, err
}
