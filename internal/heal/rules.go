package heal

import (
	"context"

	"github.com/v0xg/selfheal/internal/catalog"
	"github.com/v0xg/selfheal/internal/markup"
)

// Rules suggests replacements from the candidate index alone: no network,
// no side effects, deterministic for a given index and snapshot.
type Rules struct {
	index *catalog.Index
}

// NewRules builds a rule-based provider over the candidate index. A nil
// index behaves like an empty one.
func NewRules(index *catalog.Index) *Rules {
	if index == nil {
		index = catalog.Build(catalog.Node{})
	}
	return &Rules{index: index}
}

// Name implements Provider.
func (r *Rules) Name() string { return "rules" }

// Suggest returns the first plausible alternative from the failed
// selector's candidate group. Selectors outside the index get
// ErrNoSuggestion, never a guess. If no remaining member passes the
// plausibility check, the first non-identical member is returned anyway: a
// cheap, possibly wrong guess beats escalating to a paid remote call when
// a local table exists, and the orchestrator's retry bound catches a bad
// one.
func (r *Rules) Suggest(_ context.Context, failedSelector, snapshot string) (string, error) {
	group, ok := r.index.Lookup(failedSelector)
	if !ok {
		return "", ErrNoSuggestion
	}

	fallback := ""
	for _, candidate := range group {
		if candidate == failedSelector {
			continue
		}
		if fallback == "" {
			fallback = candidate
		}
		if markup.Plausible(candidate, snapshot) {
			return candidate, nil
		}
	}
	if fallback == "" {
		// The group held nothing but the failed selector itself.
		return "", ErrNoSuggestion
	}
	return fallback, nil
}
