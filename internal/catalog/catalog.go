// Package catalog builds the process-wide candidate index: a read-only
// mapping from every known selector to the ordered group of alternatives
// believed to address the same element across markup revisions.
package catalog

// Group is an ordered list of selectors for one logical element.
// Index 0 is the newest known selector.
type Group []string

// Node is one branch of a selector catalog: either a Group of selectors
// or a nested map of named sub-catalogs. Exactly one field is set.
type Node struct {
	Group    Group
	Children map[string]Node
}

// GroupNode wraps a selector group as a catalog node.
func GroupNode(selectors ...string) Node {
	return Node{Group: selectors}
}

// Map wraps nested sub-catalogs as a catalog node.
func Map(children map[string]Node) Node {
	return Node{Children: children}
}

// Index maps every selector appearing in any group to that group.
// Built once, read-only afterwards; safe to share across sessions.
type Index struct {
	groups map[string]Group
}

// Build flattens a catalog into an index. Every member of a group maps to
// the same group slice. A selector string reused across groups resolves to
// the last group registered; that is accepted, not an error.
func Build(root Node) *Index {
	idx := &Index{groups: make(map[string]Group)}
	idx.walk(root)
	return idx
}

func (idx *Index) walk(n Node) {
	if len(n.Group) > 0 {
		for _, sel := range n.Group {
			idx.groups[sel] = n.Group
		}
		return
	}
	for _, child := range n.Children {
		idx.walk(child)
	}
}

// Lookup returns the candidate group containing the selector.
func (idx *Index) Lookup(selector string) (Group, bool) {
	g, ok := idx.groups[selector]
	return g, ok
}

// Len reports how many distinct selectors the index knows.
func (idx *Index) Len() int {
	return len(idx.groups)
}
