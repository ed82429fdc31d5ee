package heal

import (
	"context"
	"errors"
)

// Custom wraps a caller-supplied healing function. The markup snapshot is
// truncated before invocation so custom logic never re-implements the size
// cap.
type Custom struct {
	fn            SuggestFunc
	snapshotLimit int
}

// NewCustom builds the custom provider. A nil function is a
// construction-time error.
func NewCustom(fn SuggestFunc, snapshotLimit int) (*Custom, error) {
	if fn == nil {
		return nil, errors.New("custom provider: healing function required")
	}
	return &Custom{fn: fn, snapshotLimit: snapshotLimit}, nil
}

// Name implements Provider.
func (p *Custom) Name() string { return "custom" }

// Suggest delegates to the wrapped function. Its errors propagate as-is.
func (p *Custom) Suggest(ctx context.Context, failedSelector, snapshot string) (string, error) {
	return p.fn(ctx, failedSelector, snapshotFor(snapshot, p.snapshotLimit))
}
