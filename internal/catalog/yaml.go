package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML catalog. Any sequence of strings is one candidate
// group; mappings are walked further; scalar leaves (base URLs and the
// like) are skipped.
//
//	login:
//	  username: ["#user-email", "#login-email"]
//	  submit:   ["#login-btn", "button.login__submit"]
func LoadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds an index from raw YAML catalog bytes.
func Parse(data []byte) (*Index, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	node, err := fromYAML(root)
	if err != nil {
		return nil, err
	}
	return Build(node), nil
}

func fromYAML(n *yaml.Node) (Node, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		group := make(Group, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return Node{}, fmt.Errorf("catalog line %d: selector group must contain only strings", item.Line)
			}
			group = append(group, item.Value)
		}
		return Node{Group: group}, nil
	case yaml.MappingNode:
		children := make(map[string]Node, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child, err := fromYAML(n.Content[i+1])
			if err != nil {
				return Node{}, err
			}
			children[key] = child
		}
		return Node{Children: children}, nil
	default:
		// Scalar leaf: not a selector group, skip.
		return Node{}, nil
	}
}
