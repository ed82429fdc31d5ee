package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/v0xg/selfheal/internal/a11y"
	"github.com/v0xg/selfheal/internal/session"
)

func sampleReport() *Report {
	r := New("https://example.com", "booking flow")
	r.StepsRun = 3
	r.StepsFail = 1
	r.Events = []session.Event{
		{Original: "#hp-widget__sfrom", Healed: "#fromCity", Action: "fill", Timestamp: time.Now(), Provider: "rules"},
	}
	r.Violations = []a11y.Violation{
		{Rule: "image-alt", Severity: a11y.Serious, Selector: "img.hero", Summary: "image has no alt attribute"},
	}
	r.Finish()
	return r
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotEmpty(t, decoded["sessionId"])
	assert.Equal(t, "https://example.com", decoded["url"])
	events, ok := decoded["healingEvents"].([]any)
	require.True(t, ok)
	require.Len(t, events, 1)
	first := events[0].(map[string]any)
	assert.Equal(t, "#hp-widget__sfrom", first["originalSelector"])
	assert.Equal(t, "#fromCity", first["healedSelector"])
	assert.Equal(t, "rules", first["providerName"])
}

func TestWriteConsole(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().WriteConsole(&buf)
	out := buf.String()
	assert.Contains(t, out, "3 run, 1 failed")
	assert.Contains(t, out, "#hp-widget__sfrom")
	assert.Contains(t, out, "#fromCity")
	assert.Contains(t, out, "image-alt")
}

func TestDistinctSessionIDs(t *testing.T) {
	assert.NotEqual(t, New("u", "").SessionID, New("u", "").SessionID)
}
