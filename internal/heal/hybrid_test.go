package heal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearRemoteEnv hides any ambient credentials so the hybrid provider's
// remote tier stays disabled during these tests.
func clearRemoteEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SELFHEAL_ANTHROPIC_KEY", "ANTHROPIC_API_KEY",
		"SELFHEAL_OPENAI_KEY", "OPENAI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestHybridPrefersCandidateIndex(t *testing.T) {
	clearRemoteEnv(t)
	h, err := NewHybrid(searchIndex(t), RemoteConfig{}, 0)
	require.NoError(t, err)

	got, err := h.Suggest(context.Background(), "#hp-widget__sfrom", `<input id="fromCity">`)
	require.NoError(t, err)
	assert.Equal(t, "#fromCity", got)
}

func TestHybridIDShapeFallback(t *testing.T) {
	clearRemoteEnv(t)
	h, err := NewHybrid(nil, RemoteConfig{}, 0)
	require.NoError(t, err)

	got, err := h.Suggest(context.Background(), "#unknownWidget123", "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, `[data-testid="unknownWidget123"]`, got)
}

func TestHybridClassShapeFallback(t *testing.T) {
	clearRemoteEnv(t)
	h, err := NewHybrid(nil, RemoteConfig{}, 0)
	require.NoError(t, err)

	got, err := h.Suggest(context.Background(), ".someRandomClass", "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, `[class*="someRandomClass"]`, got)
}

func TestHybridUnrecognizedShapeReturnsOriginal(t *testing.T) {
	clearRemoteEnv(t)
	h, err := NewHybrid(nil, RemoteConfig{}, 0)
	require.NoError(t, err)

	xpath := `//div[@class="legacy"]/button[2]`
	got, err := h.Suggest(context.Background(), xpath, "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, xpath, got)
}

func TestHybridRemoteTierRequiresCredential(t *testing.T) {
	clearRemoteEnv(t)
	// A named backend without any credential leaves the remote tier off
	// instead of failing construction.
	h, err := NewHybrid(nil, RemoteConfig{Provider: "claude"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "hybrid", h.Name())

	got, err := h.Suggest(context.Background(), "#unknownWidget123", "<html></html>")
	require.NoError(t, err)
	assert.Equal(t, `[data-testid="unknownWidget123"]`, got)
}

func TestHybridRemoteTierAttachedWithCredential(t *testing.T) {
	clearRemoteEnv(t)
	h, err := NewHybrid(nil, RemoteConfig{Provider: "claude", APIKey: "test-key"}, 0)
	require.NoError(t, err)
	assert.Equal(t, "hybrid+anthropic", h.Name())
}

func TestShapeFallback(t *testing.T) {
	assert.Equal(t, `[data-testid="save"]`, shapeFallback("#save"))
	assert.Equal(t, `[class*="btn"]`, shapeFallback(".btn.primary"))
	assert.Equal(t, "div > span", shapeFallback("div > span"))
}
