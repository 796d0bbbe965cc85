package agent

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/techweeksl/prreview/internal/domain"
)

// Compile-time interface check
var _ Reviewer = (*ClaudeAgent)(nil)

// DefaultTimeout bounds a single review invocation.
const DefaultTimeout = 600 * time.Second

// ClaudeAgent implements the Reviewer interface for the Claude CLI backend.
type ClaudeAgent struct {
	model   string
	timeout time.Duration
}

// NewClaudeAgent creates a ClaudeAgent. An empty model uses the CLI's
// default; a non-positive timeout falls back to DefaultTimeout.
func NewClaudeAgent(model string, timeout time.Duration) *ClaudeAgent {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ClaudeAgent{model: model, timeout: timeout}
}

// Name returns the backend's identifier.
func (a *ClaudeAgent) Name() string {
	return "claude"
}

// IsAvailable checks if the claude CLI is installed and accessible.
func (a *ClaudeAgent) IsAvailable() error {
	_, err := exec.LookPath("claude")
	if err != nil {
		return fmt.Errorf("claude CLI not found in PATH: %w", err)
	}
	return nil
}

// args builds the CLI argument list for a review invocation.
func (a *ClaudeAgent) args() []string {
	args := []string{"-p", "--output-format", "json", "--dangerously-skip-permissions"}
	if a.model != "" {
		args = append(args, "--model", a.model)
	}
	return args
}

// Review sends the prompt to the claude CLI and parses its JSON envelope.
// The prompt is piped via stdin to avoid ARG_MAX limits on large batches.
// Timeouts, non-zero exits, error envelopes, and unparseable payloads are
// all fatal; callers must not continue the run on error.
func (a *ClaudeAgent) Review(ctx context.Context, prompt string) (*domain.ModelReview, error) {
	if err := a.IsAvailable(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	res, err := runCommand(ctx, "claude", a.args(), strings.NewReader(prompt))
	if ctxErr := ctx.Err(); ctxErr == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, a.timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run claude CLI: %w", err)
	}
	if res.exitCode != 0 {
		if res.stderr != "" {
			return nil, fmt.Errorf("claude CLI exited with code %d: %s", res.exitCode, res.stderr)
		}
		return nil, fmt.Errorf("claude CLI exited with code %d", res.exitCode)
	}

	return ParseResponse(res.stdout)
}
