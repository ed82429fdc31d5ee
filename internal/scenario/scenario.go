// Package scenario loads the YAML step lists the CLI runner executes.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one browser action in a scenario.
type Step struct {
	Action   string `yaml:"action"`             // click, fill, text, visible, wait, navigate
	Selector string `yaml:"selector,omitempty"` // target element (click, fill, text, visible)
	Value    string `yaml:"value,omitempty"`    // text to fill
	URL      string `yaml:"url,omitempty"`      // navigate target
	WaitMs   int    `yaml:"wait,omitempty"`     // pause after the action
}

// Scenario is an ordered list of steps with an optional name.
type Scenario struct {
	Name  string `yaml:"name,omitempty"`
	Steps []Step `yaml:"steps"`
}

// LoadFile reads and validates a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse builds a scenario from raw YAML bytes.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario has no steps")
	}
	for i, step := range sc.Steps {
		if err := validate(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &sc, nil
}

func validate(s Step) error {
	switch s.Action {
	case "click", "text", "visible":
		if s.Selector == "" {
			return fmt.Errorf("%s requires a selector", s.Action)
		}
	case "fill":
		if s.Selector == "" {
			return fmt.Errorf("fill requires a selector")
		}
		if s.Value == "" {
			return fmt.Errorf("fill requires a value")
		}
	case "navigate":
		if s.URL == "" {
			return fmt.Errorf("navigate requires a url")
		}
	case "wait":
		if s.WaitMs <= 0 {
			return fmt.Errorf("wait requires a positive duration")
		}
	case "":
		return fmt.Errorf("missing action")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}
