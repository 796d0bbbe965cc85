// Package main provides the CLI entry point for prreview.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/techweeksl/prreview/internal/agent"
	"github.com/techweeksl/prreview/internal/config"
	"github.com/techweeksl/prreview/internal/domain"
	"github.com/techweeksl/prreview/internal/github"
	"github.com/techweeksl/prreview/internal/prompt"
	"github.com/techweeksl/prreview/internal/review"
	"github.com/techweeksl/prreview/internal/terminal"
)

var (
	dryRun     bool
	verbose    bool
	model      string
	repo       string
	batchChars int
	timeout    time.Duration
	guidelines string
	noConfig   bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:   "prreview <pr-number | pr-url>",
		Short: "Review a GitHub pull request with Claude",
		Long: `Fetch a pull request's changed files, review them with the Claude CLI
against the repository guidelines, and post the findings as inline
review comments on the PR.

Exit codes:
  0 - Review completed (including when there is nothing to review)
  1 - Error`,
		Args:          cobra.ExactArgs(1),
		RunE:          runReview,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildVersionString(),
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Configuration flags (defaults are resolved via config.Resolve with precedence: flag > env > config > default)
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"Print the review instead of posting it to GitHub")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Print debug output")
	rootCmd.Flags().StringVarP(&model, "model", "m", "",
		"Claude model to use, e.g. sonnet or opus (env: PRREVIEW_MODEL)")
	rootCmd.Flags().StringVarP(&repo, "repo", "R", "",
		"Repository as owner/repo, required for bare PR numbers (env: PRREVIEW_REPO)")
	rootCmd.Flags().IntVar(&batchChars, "batch-chars", 0,
		"Character budget per review batch (default: 150000, env: PRREVIEW_BATCH_CHARS)")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 0,
		"Timeout per model invocation (default: 10m, env: PRREVIEW_TIMEOUT)")
	rootCmd.Flags().StringVarP(&guidelines, "guidelines", "g", "",
		"Path to the review guidelines document (default: CLAUDE.md, env: PRREVIEW_GUIDELINES)")
	rootCmd.Flags().BoolVar(&noConfig, "no-config", false,
		"Skip loading the .prreview.yaml config file")

	if err := rootCmd.Execute(); err != nil {
		// Check if this is an exit code wrapper (not a real error)
		if exitErr, ok := err.(exitCodeError); ok {
			return exitErr.code.Int()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return domain.ExitError.Int()
	}

	return 0
}

func runReview(cmd *cobra.Command, args []string) error {
	// Disable colors if stdout is not a TTY
	if !terminal.IsStdoutTTY() {
		terminal.DisableColors()
	}

	logger := terminal.NewLogger(verbose)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr)
		logger.Log("Interrupted, shutting down...", terminal.StyleWarning)
		cancel()
	}()

	token := os.Getenv(config.TokenEnvVar)
	if token == "" {
		logger.Logf(terminal.StyleError, "%s is not set", config.TokenEnvVar)
		return exitCode(domain.ExitError)
	}

	// Load config file (unless --no-config)
	var cfg *config.Config
	if !noConfig {
		result, err := config.Load()
		if err != nil {
			logger.Logf(terminal.StyleError, "Config error: %v", err)
			return exitCode(domain.ExitError)
		}
		cfg = result.Config
		// Display warnings for unknown keys
		for _, warning := range result.Warnings {
			logger.Logf(terminal.StyleWarning, "Warning: %s", warning)
		}
	}

	// Build flag state from cobra's Changed() method
	flagState := config.FlagState{
		RepoSet:       cmd.Flags().Changed("repo"),
		ModelSet:      cmd.Flags().Changed("model"),
		BatchCharsSet: cmd.Flags().Changed("batch-chars"),
		TimeoutSet:    cmd.Flags().Changed("timeout"),
		GuidelinesSet: cmd.Flags().Changed("guidelines"),
	}
	flagValues := config.Resolved{
		Repo:       repo,
		Model:      model,
		BatchChars: batchChars,
		Timeout:    timeout,
		Guidelines: guidelines,
	}

	// Resolve final configuration (precedence: flags > env vars > config file > defaults)
	resolved := config.Resolve(cfg, config.LoadEnvState(), flagState, flagValues)

	ref, err := github.ParseRef(args[0], resolved.Repo)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	reviewer := agent.NewClaudeAgent(resolved.Model, resolved.Timeout)
	if err := reviewer.IsAvailable(); err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return exitCode(domain.ExitError)
	}

	runner := &review.Runner{
		Client:     github.NewClient(token),
		Agent:      reviewer,
		Logger:     logger,
		BatchChars: resolved.BatchChars,
		Guidelines: prompt.LoadGuidelines(resolved.Guidelines),
		DryRun:     dryRun,
	}

	if err := runner.Run(ctx, ref); err != nil {
		logger.Logf(terminal.StyleError, "Review failed: %v", err)
		return exitCode(domain.ExitError)
	}
	return nil
}
