package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFlattensNestedCatalog(t *testing.T) {
	root := Map(map[string]Node{
		"search": Map(map[string]Node{
			"from": GroupNode("#fromCity", "#hp-widget__sfrom"),
			"to":   GroupNode("#toCity", "#hp-widget__sto"),
		}),
		"login": GroupNode("#login-btn"),
	})

	idx := Build(root)
	assert.Equal(t, 5, idx.Len())

	g, ok := idx.Lookup("#hp-widget__sfrom")
	require.True(t, ok)
	assert.Equal(t, Group{"#fromCity", "#hp-widget__sfrom"}, g)

	// Every member maps back to the same group.
	g2, ok := idx.Lookup("#fromCity")
	require.True(t, ok)
	assert.Equal(t, g, g2)
}

func TestLookupUnknownSelector(t *testing.T) {
	idx := Build(GroupNode("#a", "#b"))
	_, ok := idx.Lookup("#missing")
	assert.False(t, ok)
}

func TestBuildLastWriteWinsOnReusedSelector(t *testing.T) {
	root := Map(map[string]Node{
		"first": GroupNode("#shared", "#old"),
	})
	idx := Build(root)
	g, ok := idx.Lookup("#shared")
	require.True(t, ok)
	assert.Contains(t, []string(g), "#shared")

	// A reused selector resolves to whichever group registered last;
	// with a single group there is no ambiguity to assert beyond membership.
	second := Build(Map(map[string]Node{
		"a": GroupNode("#shared", "#old"),
		"b": GroupNode("#shared", "#new"),
	}))
	g, ok = second.Lookup("#shared")
	require.True(t, ok)
	assert.Len(t, g, 2)
	assert.Equal(t, "#shared", g[0])
}

func TestParseYAMLCatalog(t *testing.T) {
	data := []byte(`
baseURL: https://example.com
search:
  from: ["#fromCity", "#hp-widget__sfrom"]
  submit: ["#search-btn", "button.search__go"]
`)
	idx, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())

	g, ok := idx.Lookup("button.search__go")
	require.True(t, ok)
	assert.Equal(t, Group{"#search-btn", "button.search__go"}, g)

	// Scalar leaves like baseURL are not selector groups.
	_, ok = idx.Lookup("https://example.com")
	assert.False(t, ok)
}

func TestParseRejectsNonStringGroupMembers(t *testing.T) {
	_, err := Parse([]byte(`bad: [["nested"]]`))
	assert.Error(t, err)
}
