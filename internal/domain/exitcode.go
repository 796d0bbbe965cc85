package domain

// ExitCode represents the exit status of the reviewer.
type ExitCode int

const (
	// ExitOK indicates the run completed, including "nothing to review".
	ExitOK ExitCode = 0
	// ExitError indicates the run failed (configuration, invocation, or posting).
	ExitError ExitCode = 1
)

// Int returns the exit code as an int for use with os.Exit.
func (e ExitCode) Int() int {
	return int(e)
}
