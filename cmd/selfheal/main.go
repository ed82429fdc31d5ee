package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/v0xg/selfheal/internal/catalog"
	"github.com/v0xg/selfheal/internal/heal"
	"github.com/v0xg/selfheal/internal/observability"
)

var (
	providerName  string
	remoteBackend string
	model         string
	endpoint      string
	catalogPath   string
	maxRetries    int
	locatorWait   time.Duration
	snapshotLimit int
	headless      bool
	profile       string
	logLevel      string
	logFile       string
	a11yEnabled   bool
	a11ySeverity  string
	reportPath    string
	verbose       bool
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "selfheal",
		Short: "Run browser tests whose selectors heal themselves",
		Long: `selfheal executes browser automation steps against a live page and,
when a selector no longer matches, repairs it automatically: first from a
candidate catalog of known renames, then via an AI provider, then by
generic selector heuristics. Every repair is recorded with its provenance.

Example:
  selfheal run https://myapp.com checkout.yaml --catalog selectors.yaml`,
	}

	rootCmd.AddCommand(newRunCmd(), newMCPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSessionFlags registers the flags shared by run and mcp.
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&providerName, "provider", "", "Healing provider: hybrid, rules, claude, openai, none (default: from env or hybrid)")
	cmd.Flags().StringVar(&remoteBackend, "remote", "claude", "Remote backend for the hybrid provider: claude, openai")
	cmd.Flags().StringVar(&model, "model", "", "Specific model override for remote providers")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "API endpoint override for remote providers")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML selector catalog backing the rule-based tier")
	cmd.Flags().IntVar(&maxRetries, "max-retries", 3, "Healing attempts per failed selector")
	cmd.Flags().DurationVar(&locatorWait, "locator-timeout", 5*time.Second, "Bound on each selector resolution attempt")
	cmd.Flags().IntVar(&snapshotLimit, "snapshot-limit", 12000, "Markup snapshot cap handed to providers (bytes)")
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	cmd.Flags().StringVar(&profile, "profile", "", "Chrome/Chromium profile directory for authenticated sessions (close browser first)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Rotating JSON log file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress")
}

func newLogger() *zap.Logger {
	level := logLevel
	if verbose {
		level = "debug"
	}
	return observability.NewLogger(observability.Config{
		Level:      level,
		LogFile:    logFile,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 14,
	})
}

// loadCatalog builds the candidate index, empty when no catalog is given.
func loadCatalog() (*catalog.Index, error) {
	if catalogPath == "" {
		return nil, nil
	}
	idx, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// buildProvider resolves the active healing provider from flags and env,
// mirroring the selection order: flag, SELFHEAL_PROVIDER, hybrid.
func buildProvider(index *catalog.Index) (heal.Provider, error) {
	name := providerName
	if name == "" {
		name = os.Getenv("SELFHEAL_PROVIDER")
		if name == "" {
			name = "hybrid"
		}
	}

	remote := heal.RemoteConfig{Model: model, Endpoint: endpoint}
	switch name {
	case "none":
		return nil, nil
	case "rules":
		return heal.New(heal.Config{Kind: heal.KindRules, Index: index, SnapshotLimit: snapshotLimit})
	case "claude", "anthropic", "openai", "gpt":
		remote.Provider = name
		return heal.New(heal.Config{Kind: heal.KindRemote, Remote: remote, SnapshotLimit: snapshotLimit})
	case "hybrid":
		remote.Provider = remoteBackend
		return heal.New(heal.Config{Kind: heal.KindHybrid, Index: index, Remote: remote, SnapshotLimit: snapshotLimit})
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: hybrid, rules, claude, openai, none)", name)
	}
}

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}
