package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/v0xg/selfheal/internal/a11y"
	"github.com/v0xg/selfheal/internal/browser"
	"github.com/v0xg/selfheal/internal/mcpserver"
	"github.com/v0xg/selfheal/internal/session"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp <url>",
		Short: "Serve the healing session as MCP tools over stdio",
		Long: `Opens a browser session on the given URL and exposes it as MCP tools
(selfheal_click, selfheal_fill, selfheal_text, ...) over stdio. Selectors
passed by the MCP client heal exactly as they do under the run command.`,
		Args: cobra.ExactArgs(1),
		RunE: runMCP,
	}
	addSessionFlags(cmd)
	cmd.Flags().StringVar(&a11ySeverity, "a11y-severity", "moderate", "Minimum accessibility severity reported by selfheal_a11y_scan")
	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx := cmd.Context()

	logger := newLogger()
	defer logger.Sync()

	index, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("catalog load failed: %w", err)
	}
	provider, err := buildProvider(index)
	if err != nil {
		return fmt.Errorf("healing provider init failed: %w", err)
	}

	driver, err := browser.Launch(browser.Options{
		Headless:   headless,
		ProfileDir: profile,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("browser launch failed: %w", err)
	}
	defer driver.Close()

	if err := driver.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	sess := session.New(driver, session.Options{
		Provider:          provider,
		MaxHealingRetries: maxRetries,
		LocatorTimeout:    locatorWait,
		Logger:            logger,
	})
	scanner := a11y.NewScanner(a11y.Severity(a11ySeverity), logger)

	return mcpserver.New(sess, driver, scanner, logger).Run(ctx)
}
