package agent

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// execResult holds the outcome of one completed CLI invocation.
type execResult struct {
	stdout   []byte
	stderr   string
	exitCode int
}

// runCommand executes a CLI command to completion with the prompt on stdin.
// The command runs in its own process group so a context cancellation kills
// the whole tree, not just the direct child.
//
// A non-zero exit is reported via execResult, not as an error; an error
// return means the command could not be started or waited on at all.
func runCommand(ctx context.Context, name string, args []string, stdin io.Reader) (*execResult, error) {
	// #nosec G204 - name is always a known backend CLI passed from trusted
	// code in the agent implementations, not user input.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &execResult{
		stdout: stdout.Bytes(),
		stderr: strings.TrimSpace(stderr.String()),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.exitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, err
	}
	return res, nil
}
