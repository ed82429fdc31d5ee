package heal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/selfheal/internal/catalog"
)

func searchIndex(t *testing.T) *catalog.Index {
	t.Helper()
	return catalog.Build(catalog.Map(map[string]catalog.Node{
		"from": catalog.GroupNode("#fromCity", "#hp-widget__sfrom"),
		"to":   catalog.GroupNode("#toCity", "#hp-widget__sto", ".to-city-input"),
	}))
}

func TestRulesUnknownSelectorReturnsNoSuggestion(t *testing.T) {
	r := NewRules(searchIndex(t))
	_, err := r.Suggest(context.Background(), "#unknownWidget123", "<html></html>")
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestRulesHealsFromCandidateGroup(t *testing.T) {
	// Scenario: the markup carries the newer id, the test still uses the
	// older selector.
	r := NewRules(searchIndex(t))
	html := `<input id="fromCity" type="text">`

	got, err := r.Suggest(context.Background(), "#hp-widget__sfrom", html)
	require.NoError(t, err)
	assert.Equal(t, "#fromCity", got)
}

func TestRulesNeverReturnsFailedSelectorItself(t *testing.T) {
	r := NewRules(searchIndex(t))
	// Markup contains the failed selector's own id; the group must still
	// yield a different member.
	html := `<input id="hp-widget__sfrom">`

	got, err := r.Suggest(context.Background(), "#hp-widget__sfrom", html)
	require.NoError(t, err)
	assert.NotEqual(t, "#hp-widget__sfrom", got)
	assert.Equal(t, "#fromCity", got)
}

func TestRulesSkipsImplausibleCandidates(t *testing.T) {
	r := NewRules(searchIndex(t))
	html := `<input class="to-city-input">`

	got, err := r.Suggest(context.Background(), "#hp-widget__sto", html)
	require.NoError(t, err)
	assert.Equal(t, ".to-city-input", got)
}

func TestRulesFallsBackToFirstCandidateWhenNonePlausible(t *testing.T) {
	// Best-effort guess: with no plausible member, the first non-identical
	// member is returned rather than escalating.
	r := NewRules(searchIndex(t))
	html := `<html><body>nothing matches here</body></html>`

	got, err := r.Suggest(context.Background(), "#hp-widget__sto", html)
	require.NoError(t, err)
	assert.Equal(t, "#toCity", got)
}

func TestRulesSingleMemberGroupHasNothingToOffer(t *testing.T) {
	r := NewRules(catalog.Build(catalog.GroupNode("#only")))
	_, err := r.Suggest(context.Background(), "#only", "<html></html>")
	assert.ErrorIs(t, err, ErrNoSuggestion)
}

func TestRulesNilIndex(t *testing.T) {
	r := NewRules(nil)
	_, err := r.Suggest(context.Background(), "#anything", "")
	assert.ErrorIs(t, err, ErrNoSuggestion)
}
