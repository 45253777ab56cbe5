package gitrun

import "fmt"

// InvalidRootError reports a root path that does not exist or is not a
// directory. Fatal to the call; never retried.
type InvalidRootError struct {
	Path   string
	Reason string
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("invalid root %s: %s", e.Path, e.Reason)
}

// PolicyError reports a command blocked by the safety policy. Always fatal
// to the call and never auto-retried: the caller must adjust the command or
// go through the approval flow.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string {
	return e.Reason
}

// ExecutionError reports a subprocess failure: the binary could not be
// located, the process could not be spawned, something broke mid-execution,
// or (via RequireOk) the command exited non-zero.
type ExecutionError struct {
	Context string
	Err     error
}

func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return e.Context
	}
	return e.Context + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}
