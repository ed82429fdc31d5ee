package heal

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/v0xg/selfheal/internal/catalog"
	"github.com/v0xg/selfheal/internal/markup"
)

// Hybrid chains the cheap strategies before the expensive one: candidate
// index first, then a remote backend when a credential is configured, then
// generic selector-shape heuristics. Cataloged renames stay free of
// network latency and API cost; the remote tier only sees genuinely novel
// structural changes.
type Hybrid struct {
	rules  *Rules
	remote Provider
}

// NewHybrid builds the composite provider. The remote tier is attached
// only when cfg names a backend and a credential is resolvable; unlike the
// standalone remote provider, a missing credential here just disables that
// tier.
func NewHybrid(index *catalog.Index, cfg RemoteConfig, snapshotLimit int) (*Hybrid, error) {
	h := &Hybrid{rules: NewRules(index)}
	if cfg.Provider != "" && remoteCredentialConfigured(cfg) {
		remote, err := NewRemote(cfg, snapshotLimit)
		if err != nil {
			return nil, err
		}
		h.remote = remote
	}
	return h, nil
}

// remoteCredentialConfigured reports whether a credential is available for
// the named backend, explicitly or via its environment variables.
func remoteCredentialConfigured(cfg RemoteConfig) bool {
	if cfg.APIKey != "" {
		return true
	}
	switch cfg.Provider {
	case "claude", "anthropic":
		return os.Getenv("SELFHEAL_ANTHROPIC_KEY") != "" || os.Getenv("ANTHROPIC_API_KEY") != ""
	case "openai", "gpt":
		return os.Getenv("SELFHEAL_OPENAI_KEY") != "" || os.Getenv("OPENAI_API_KEY") != ""
	default:
		return false
	}
}

// Name implements Provider.
func (h *Hybrid) Name() string {
	if h.remote != nil {
		return "hybrid+" + h.remote.Name()
	}
	return "hybrid"
}

// Suggest resolves in tier order: rules, remote, shape heuristics.
func (h *Hybrid) Suggest(ctx context.Context, failedSelector, snapshot string) (string, error) {
	suggestion, err := h.rules.Suggest(ctx, failedSelector, snapshot)
	if err == nil {
		return suggestion, nil
	}
	if !errors.Is(err, ErrNoSuggestion) {
		return "", err
	}

	if h.remote != nil {
		return h.remote.Suggest(ctx, failedSelector, snapshot)
	}

	return shapeFallback(failedSelector), nil
}

// shapeFallback maps a selector to a last-resort alternative by shape.
// Unrecognized shapes come back unchanged: a deliberately inert result
// that lets the caller's original failure recur with an actionable
// message.
func shapeFallback(selector string) string {
	switch {
	case strings.HasPrefix(selector, "#"):
		return `[data-testid="` + selector[1:] + `"]`
	case strings.HasPrefix(selector, "."):
		return `[class*="` + markup.ClassToken(selector) + `"]`
	default:
		return selector
	}
}
