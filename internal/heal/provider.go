// Package heal implements the pluggable strategies that supply a
// replacement selector when one fails to resolve: a rule-based lookup over
// the candidate index, remote LLM backends (Claude, OpenAI), a
// caller-supplied function, and a hybrid that chains them.
package heal

import (
	"context"
	"errors"
	"fmt"

	"github.com/v0xg/selfheal/internal/catalog"
	"github.com/v0xg/selfheal/internal/markup"
)

// Provider supplies a replacement for a selector that failed to resolve.
type Provider interface {
	// Name identifies the provider in healing event provenance.
	Name() string
	// Suggest returns a replacement selector for failedSelector given the
	// current markup snapshot. It returns ErrNoSuggestion when the provider
	// has nothing to offer.
	Suggest(ctx context.Context, failedSelector, snapshot string) (string, error)
}

// ErrNoSuggestion is returned when a provider has no replacement to offer.
var ErrNoSuggestion = errors.New("no selector suggestion available")

// ProviderError wraps a transport or parsing failure from a remote backend.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Kind selects the active provider strategy for a session.
type Kind string

const (
	KindRules  Kind = "rules"
	KindRemote Kind = "remote"
	KindCustom Kind = "custom"
	KindHybrid Kind = "hybrid"
)

// SuggestFunc is the shape of a caller-supplied healing function. It
// receives the failed selector and an already-truncated markup snapshot.
type SuggestFunc func(ctx context.Context, failedSelector, snapshot string) (string, error)

// RemoteConfig configures a remote LLM backend.
type RemoteConfig struct {
	Provider string // "claude", "anthropic", "openai" or "gpt"
	APIKey   string // explicit credential; falls back to provider env vars
	Model    string // provider-specific default when empty
	Endpoint string // provider-specific default when empty
}

// Config is the tagged union over the provider strategies. Exactly one
// strategy is active per session, selected by Kind.
type Config struct {
	Kind Kind

	// Index backs the rule-based and hybrid strategies.
	Index *catalog.Index
	// Remote backs the remote strategy, and optionally the hybrid one.
	Remote RemoteConfig
	// Custom backs the custom strategy.
	Custom SuggestFunc

	// SnapshotLimit caps markup handed to remote and custom providers.
	// Zero means markup.DefaultSnapshotLimit.
	SnapshotLimit int
}

// New builds the provider for a session configuration. Configuration
// problems (missing credential, missing custom function) fail here, before
// any test body runs.
func New(cfg Config) (Provider, error) {
	switch cfg.Kind {
	case KindRules:
		return NewRules(cfg.Index), nil
	case KindRemote:
		return NewRemote(cfg.Remote, cfg.SnapshotLimit)
	case KindCustom:
		return NewCustom(cfg.Custom, cfg.SnapshotLimit)
	case KindHybrid:
		return NewHybrid(cfg.Index, cfg.Remote, cfg.SnapshotLimit)
	default:
		return nil, fmt.Errorf("unknown healing provider kind: %q (supported: rules, remote, custom, hybrid)", cfg.Kind)
	}
}

// NewRemote builds the remote backend named in cfg.Provider.
func NewRemote(cfg RemoteConfig, snapshotLimit int) (Provider, error) {
	switch cfg.Provider {
	case "claude", "anthropic":
		return NewClaude(cfg, snapshotLimit)
	case "openai", "gpt":
		return NewOpenAI(cfg, snapshotLimit)
	default:
		return nil, fmt.Errorf("unknown remote provider: %q (supported: claude, openai)", cfg.Provider)
	}
}

func snapshotFor(snapshot string, limit int) string {
	return markup.Truncate(snapshot, limit)
}
