// Package report renders a session's outcome: healing provenance,
// accessibility findings and step counts, to the console or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/v0xg/selfheal/internal/a11y"
	"github.com/v0xg/selfheal/internal/session"
)

// Report is the full record of one session run.
type Report struct {
	SessionID  string           `json:"sessionId"`
	URL        string           `json:"url"`
	Scenario   string           `json:"scenario,omitempty"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	StepsRun   int              `json:"stepsRun"`
	StepsFail  int              `json:"stepsFailed"`
	Events     []session.Event  `json:"healingEvents"`
	Violations []a11y.Violation `json:"accessibilityViolations,omitempty"`
}

// New starts a report for a run against url.
func New(url, scenarioName string) *Report {
	return &Report{
		SessionID: uuid.NewString(),
		URL:       url,
		Scenario:  scenarioName,
		StartedAt: time.Now(),
	}
}

// Finish stamps the end time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteFile writes the JSON report to a file.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return r.WriteJSON(f)
}

// WriteConsole prints a human-readable summary.
func (r *Report) WriteConsole(w io.Writer) {
	fmt.Fprintf(w, "Session %s — %s\n", r.SessionID, r.URL)
	fmt.Fprintf(w, "  steps: %d run, %d failed\n", r.StepsRun, r.StepsFail)

	if len(r.Events) == 0 {
		fmt.Fprintln(w, "  healing: no selectors healed")
	} else {
		fmt.Fprintf(w, "  healing: %d selector(s) healed\n", len(r.Events))
		for _, e := range r.Events {
			fmt.Fprintf(w, "    %s: %s → %s (%s)\n", e.Action, e.Original, e.Healed, e.Provider)
		}
	}

	if len(r.Violations) > 0 {
		fmt.Fprintf(w, "  accessibility: %d violation(s)\n", len(r.Violations))
		for _, v := range r.Violations {
			fmt.Fprintf(w, "    [%s] %s %s: %s\n", v.Severity, v.Rule, v.Selector, v.Summary)
		}
	}
}
