// Package markup holds the cheap, parse-free checks the healing engine
// runs against raw document snapshots.
package markup

import "strings"

// DefaultSnapshotLimit caps how much markup is handed to a provider.
const DefaultSnapshotLimit = 12000

// TruncationMarker is appended to a shortened snapshot so a model knows
// the document is partial.
const TruncationMarker = "\n<!-- snapshot truncated -->"

// Truncate caps a markup snapshot at limit bytes, appending the
// truncation marker. Snapshots at or under the limit pass through
// unchanged. A non-positive limit falls back to the default.
func Truncate(markup string, limit int) string {
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}
	if len(markup) <= limit {
		return markup
	}
	return markup[:limit] + TruncationMarker
}

// Plausible estimates whether a candidate selector is likely present in
// the markup without a real DOM engine. False positives only cost one
// wasted resolution attempt, which the retry protocol bounds.
//
// Shape rules, first match wins:
//   - "#name" is plausible iff an id="name" (or id='name') attribute occurs.
//   - "[attr=\"value\"]" is plausible iff the inner attr="value" occurs.
//   - ".name..." is plausible iff the leading class token occurs anywhere.
//   - anything else is plausible by default.
func Plausible(candidate, markup string) bool {
	switch {
	case strings.HasPrefix(candidate, "#"):
		name := candidate[1:]
		return strings.Contains(markup, `id="`+name+`"`) ||
			strings.Contains(markup, `id='`+name+`'`)
	case strings.HasPrefix(candidate, "[") && strings.HasSuffix(candidate, "]"):
		inner := strings.ReplaceAll(candidate[1:len(candidate)-1], `'`, `"`)
		return strings.Contains(markup, inner)
	case strings.HasPrefix(candidate, "."):
		return strings.Contains(markup, ClassToken(candidate))
	default:
		// No cheap check possible for compound or engine-specific syntax.
		return true
	}
}

// ClassToken extracts the leading class name from a class-shaped selector,
// stopping at the first '.', space, ':', '[' or ']' after the dot.
func ClassToken(selector string) string {
	token := strings.TrimPrefix(selector, ".")
	if i := strings.IndexAny(token, ". :[]"); i >= 0 {
		token = token[:i]
	}
	return token
}
