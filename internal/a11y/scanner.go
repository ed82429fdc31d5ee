// Package a11y runs an in-page accessibility rule pass and filters the
// violations by severity. The healing orchestrator is unaware of it;
// callers invoke a scan after an action completes.
package a11y

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Severity grades a violation. Ordering: minor < moderate < serious < critical.
type Severity string

const (
	Minor    Severity = "minor"
	Moderate Severity = "moderate"
	Serious  Severity = "serious"
	Critical Severity = "critical"
)

var severityRank = map[Severity]int{
	Minor:    0,
	Moderate: 1,
	Serious:  2,
	Critical: 3,
}

// Rank returns the severity's position in the ordering; unknown severities
// rank below minor so they never pass a filter accidentally.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// Violation is one accessibility finding on the current page.
type Violation struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Selector string   `json:"selector"`
	Summary  string   `json:"summary"`
}

// Evaluator runs a JS function in the live page and returns its string
// result. The browser driver satisfies this.
type Evaluator interface {
	EvalJSON(ctx context.Context, js string) (string, error)
}

// Scanner runs the rule pass with a minimum-severity filter.
type Scanner struct {
	min Severity
	log *zap.Logger
}

// NewScanner builds a scanner reporting violations at or above min.
func NewScanner(min Severity, logger *zap.Logger) *Scanner {
	if min == "" {
		min = Minor
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{min: min, log: logger}
}

// Scan executes the rule pass in the page and returns the filtered
// violations.
func (s *Scanner) Scan(ctx context.Context, ev Evaluator) ([]Violation, error) {
	raw, err := ev.EvalJSON(ctx, rulesJS)
	if err != nil {
		return nil, fmt.Errorf("accessibility scan: %w", err)
	}
	violations := parseViolations(raw)
	filtered := Filter(violations, s.min)
	s.log.Debug("accessibility scan complete",
		zap.Int("found", len(violations)),
		zap.Int("reported", len(filtered)),
		zap.String("minSeverity", string(s.min)))
	return filtered, nil
}

func parseViolations(raw string) []Violation {
	var out []Violation
	gjson.Parse(raw).ForEach(func(_, v gjson.Result) bool {
		out = append(out, Violation{
			Rule:     v.Get("rule").String(),
			Severity: Severity(v.Get("severity").String()),
			Selector: v.Get("selector").String(),
			Summary:  v.Get("summary").String(),
		})
		return true
	})
	return out
}

// Filter keeps violations at or above the minimum severity.
func Filter(violations []Violation, min Severity) []Violation {
	threshold := min.Rank()
	var out []Violation
	for _, v := range violations {
		if v.Severity.Rank() >= threshold {
			out = append(out, v)
		}
	}
	return out
}
