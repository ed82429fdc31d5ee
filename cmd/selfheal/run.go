package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/v0xg/selfheal/internal/a11y"
	"github.com/v0xg/selfheal/internal/browser"
	"github.com/v0xg/selfheal/internal/report"
	"github.com/v0xg/selfheal/internal/scenario"
	"github.com/v0xg/selfheal/internal/session"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <url> <scenario.yaml>",
		Short: "Execute a scenario against a page with selector healing",
		Args:  cobra.ExactArgs(2),
		RunE:  runScenario,
	}
	addSessionFlags(cmd)
	cmd.Flags().BoolVar(&a11yEnabled, "a11y", false, "Run an accessibility scan after the scenario")
	cmd.Flags().StringVar(&a11ySeverity, "a11y-severity", "moderate", "Minimum accessibility severity to report: minor, moderate, serious, critical")
	cmd.Flags().StringVarP(&reportPath, "report", "o", "", "Write the JSON report to this file")
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	url := args[0]
	scenarioPath := args[1]
	ctx := cmd.Context()

	logger := newLogger()
	defer logger.Sync()

	logVerbose("Starting selfheal")
	logVerbose("  URL: %s", url)
	logVerbose("  Scenario: %s", scenarioPath)

	sc, err := scenario.LoadFile(scenarioPath)
	if err != nil {
		return fmt.Errorf("scenario load failed: %w", err)
	}

	index, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	if index != nil {
		logVerbose("  Catalog: %d selectors", index.Len())
	}

	// Provider construction fails fast, before the browser launches.
	provider, err := buildProvider(index)
	if err != nil {
		return fmt.Errorf("healing provider init failed: %w", err)
	}
	if provider != nil {
		logVerbose("  Provider: %s", provider.Name())
	}

	fmt.Printf("→ Launching browser... ")
	driver, err := browser.Launch(browser.Options{
		Headless:   headless,
		ProfileDir: profile,
		Logger:     logger,
	})
	if err != nil {
		fmt.Println("failed")
		return fmt.Errorf("browser launch failed: %w", err)
	}
	defer driver.Close()
	fmt.Println("done")

	fmt.Printf("→ Opening %s... ", url)
	if err := driver.Navigate(ctx, url); err != nil {
		fmt.Println("failed")
		return fmt.Errorf("navigation failed: %w", err)
	}
	fmt.Println("done")

	sess := session.New(driver, session.Options{
		Provider:          provider,
		MaxHealingRetries: maxRetries,
		LocatorTimeout:    locatorWait,
		Logger:            logger,
	})

	rep := report.New(url, sc.Name)
	executeSteps(ctx, sess, driver, sc, rep)
	rep.Events = sess.Events()

	if a11yEnabled {
		fmt.Printf("→ Accessibility scan... ")
		scanner := a11y.NewScanner(a11y.Severity(a11ySeverity), logger)
		violations, err := scanner.Scan(ctx, driver)
		if err != nil {
			fmt.Println("failed")
			return fmt.Errorf("accessibility scan failed: %w", err)
		}
		fmt.Printf("done (%d violations)\n", len(violations))
		rep.Violations = violations
	}

	rep.Finish()
	fmt.Println()
	rep.WriteConsole(os.Stdout)

	if reportPath != "" {
		if err := rep.WriteFile(reportPath); err != nil {
			return fmt.Errorf("report write failed: %w", err)
		}
		fmt.Printf("✓ Report saved to %s\n", reportPath)
	}

	if rep.StepsFail > 0 {
		return fmt.Errorf("%d of %d steps failed", rep.StepsFail, rep.StepsRun)
	}
	return nil
}

// executeSteps runs the scenario serially. A failed step is reported and
// counted but does not abort the run, so one broken selector does not hide
// every failure after it.
func executeSteps(ctx context.Context, sess *session.Session, driver *browser.Driver, sc *scenario.Scenario, rep *report.Report) {
	fmt.Println("→ Running steps...")
	for i, step := range sc.Steps {
		fmt.Printf("  [%d/%d] %s %s", i+1, len(sc.Steps), step.Action, stepTarget(step))

		rep.StepsRun++
		var err error
		switch step.Action {
		case "navigate":
			err = driver.Navigate(ctx, step.URL)
		case "click":
			err = sess.Click(ctx, step.Selector)
		case "fill":
			err = sess.Fill(ctx, step.Selector, step.Value)
		case "text":
			var text string
			text, err = sess.TextContent(ctx, step.Selector)
			if err == nil {
				fmt.Printf(" (%q)", text)
			}
		case "visible":
			var visible bool
			visible, err = sess.IsVisible(ctx, step.Selector)
			if err == nil {
				fmt.Printf(" (%v)", visible)
			}
		case "wait":
			time.Sleep(time.Duration(step.WaitMs) * time.Millisecond)
		}

		if err != nil {
			rep.StepsFail++
			fmt.Printf(" ✗ (%v)\n", err)
			continue
		}
		fmt.Println(" ✓")

		if step.WaitMs > 0 && step.Action != "wait" {
			time.Sleep(time.Duration(step.WaitMs) * time.Millisecond)
		}
	}
}

func stepTarget(step scenario.Step) string {
	switch step.Action {
	case "navigate":
		return step.URL
	case "wait":
		return fmt.Sprintf("%dms", step.WaitMs)
	default:
		return step.Selector
	}
}
