package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/selfheal/internal/heal"
)

// fakeHandle is an element the fake driver hands out.
type fakeHandle struct {
	text     string
	visible  bool
	clickErr error
	filled   []string
}

func (h *fakeHandle) Click(context.Context) error { return h.clickErr }
func (h *fakeHandle) Fill(_ context.Context, value string) error {
	h.filled = append(h.filled, value)
	return nil
}
func (h *fakeHandle) TextContent(context.Context) (string, error) { return h.text, nil }
func (h *fakeHandle) InnerText(context.Context) (string, error)   { return h.text, nil }
func (h *fakeHandle) InputValue(context.Context) (string, error)  { return h.text, nil }
func (h *fakeHandle) IsVisible(context.Context) (bool, error)     { return h.visible, nil }

// fakeDriver resolves only the selectors it was seeded with and records
// every resolution attempt.
type fakeDriver struct {
	elements map[string]*fakeHandle
	markup   string
	resolved []string
}

func (d *fakeDriver) Resolve(_ context.Context, selector string, timeout time.Duration) (Handle, error) {
	d.resolved = append(d.resolved, selector)
	if h, ok := d.elements[selector]; ok {
		return h, nil
	}
	return nil, &ResolveError{Selector: selector, Timeout: timeout, Err: context.DeadlineExceeded}
}

func (d *fakeDriver) CurrentMarkup(context.Context) (string, error) {
	return d.markup, nil
}

// scriptedProvider returns canned suggestions in order and records the
// failed selector it was seeded with on each call.
type scriptedProvider struct {
	suggestions []string
	seeds       []string
	err         error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Suggest(_ context.Context, failedSelector, _ string) (string, error) {
	p.seeds = append(p.seeds, failedSelector)
	if p.err != nil {
		return "", p.err
	}
	if len(p.suggestions) == 0 {
		return "", heal.ErrNoSuggestion
	}
	next := p.suggestions[0]
	p.suggestions = p.suggestions[1:]
	return next, nil
}

func TestDirectSuccessRecordsNoEvent(t *testing.T) {
	d := &fakeDriver{elements: map[string]*fakeHandle{"#ok": {}}}
	s := New(d, Options{Provider: &scriptedProvider{}})

	require.NoError(t, s.Click(context.Background(), "#ok"))
	assert.Empty(t, s.Events())
	assert.Equal(t, []string{"#ok"}, d.resolved)
}

func TestHealingDisabledFailsImmediately(t *testing.T) {
	d := &fakeDriver{elements: map[string]*fakeHandle{}}
	s := New(d, Options{})

	err := s.Click(context.Background(), "#gone")
	assert.ErrorIs(t, err, ErrHealingDisabled)
	assert.Empty(t, s.Events())
}

func TestHealingSuccessRecordsProvenance(t *testing.T) {
	d := &fakeDriver{
		elements: map[string]*fakeHandle{"#new": {}},
		markup:   `<button id="new">Go</button>`,
	}
	p := &scriptedProvider{suggestions: []string{"#new"}}
	s := New(d, Options{Provider: p})

	require.NoError(t, s.Click(context.Background(), "#old"))

	events := s.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "#old", events[0].Original)
	assert.Equal(t, "#new", events[0].Healed)
	assert.Equal(t, "click", events[0].Action)
	assert.Equal(t, "scripted", events[0].Provider)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)
}

func TestLaterAttemptsSeedPreviousFailedSuggestion(t *testing.T) {
	// Attempt 1 suggests "#miss" which also fails; attempt 2 must be
	// seeded with "#miss", not the original selector, and its suggestion
	// "#hit" heals. The event still records the original selector.
	d := &fakeDriver{elements: map[string]*fakeHandle{"#hit": {}}}
	p := &scriptedProvider{suggestions: []string{"#miss", "#hit"}}
	s := New(d, Options{Provider: p, MaxHealingRetries: 3})

	require.NoError(t, s.Click(context.Background(), "#orig"))

	assert.Equal(t, []string{"#orig", "#miss"}, p.seeds)
	events := s.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "#orig", events[0].Original)
	assert.Equal(t, "#hit", events[0].Healed)
}

func TestRetryBoundExhaustion(t *testing.T) {
	d := &fakeDriver{elements: map[string]*fakeHandle{}}
	p := &scriptedProvider{suggestions: []string{"#try1"}}
	s := New(d, Options{Provider: p, MaxHealingRetries: 1})

	err := s.Click(context.Background(), "#orig")

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "#orig", exhausted.Original)
	assert.Equal(t, 1, exhausted.Retries)
	assert.NotNil(t, exhausted.Last)
	assert.Empty(t, s.Events(), "a failed healing run must leave the log unchanged")
	// Exactly one provider call: the bound limits API usage.
	assert.Len(t, p.seeds, 1)
}

func TestProviderErrorPropagatesWithEmptyLog(t *testing.T) {
	boom := errors.New("custom healer exploded")
	custom, err := heal.NewCustom(func(context.Context, string, string) (string, error) {
		return "", boom
	}, 0)
	require.NoError(t, err)

	d := &fakeDriver{elements: map[string]*fakeHandle{}}
	s := New(d, Options{Provider: custom})

	err = s.Click(context.Background(), "#orig")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Events())
}

func TestNoSuggestionPropagates(t *testing.T) {
	d := &fakeDriver{elements: map[string]*fakeHandle{}}
	s := New(d, Options{Provider: &scriptedProvider{}})

	err := s.Click(context.Background(), "#orig")
	assert.ErrorIs(t, err, heal.ErrNoSuggestion)
	assert.Empty(t, s.Events())
}

func TestActionResultsFlowThroughHealing(t *testing.T) {
	d := &fakeDriver{
		elements: map[string]*fakeHandle{"#label": {text: "Paris", visible: true}},
	}
	p := &scriptedProvider{suggestions: []string{"#label", "#label", "#label"}}
	s := New(d, Options{Provider: p})

	text, err := s.TextContent(context.Background(), "#old-label")
	require.NoError(t, err)
	assert.Equal(t, "Paris", text)

	visible, err := s.IsVisible(context.Background(), "#old-label")
	require.NoError(t, err)
	assert.True(t, visible)

	// One event per healed action, in invocation order.
	events := s.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "textContent", events[0].Action)
	assert.Equal(t, "isVisible", events[1].Action)
}

func TestFillPassesValue(t *testing.T) {
	h := &fakeHandle{}
	d := &fakeDriver{elements: map[string]*fakeHandle{"#email": h}}
	s := New(d, Options{})

	require.NoError(t, s.Fill(context.Background(), "#email", "test@example.com"))
	assert.Equal(t, []string{"test@example.com"}, h.filled)
}

func TestEventsReturnsCopy(t *testing.T) {
	d := &fakeDriver{elements: map[string]*fakeHandle{"#new": {}}}
	s := New(d, Options{Provider: &scriptedProvider{suggestions: []string{"#new"}}})
	require.NoError(t, s.Click(context.Background(), "#old"))

	events := s.Events()
	events[0].Healed = "tampered"
	assert.Equal(t, "#new", s.Events()[0].Healed)
}
