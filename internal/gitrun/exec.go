package gitrun

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"
)

// timeoutExitCode is the conventional exit code for a timed-out command.
const timeoutExitCode = 124

// reapTimeout bounds the post-kill wait so cleanup can never hang the caller.
const reapTimeout = 500 * time.Millisecond

// lockedBuffer serializes writes from the exec pipe-copy goroutines so the
// timeout path can drain already-produced output without a race.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// runProcess spawns argv with no shell, stdin closed, and cwd pinned to the
// runner's root, then waits under the configured hard timeout.
//
// Returns (stdout, stderr, exitCode, timedOut, err). A non-zero exit is not
// an err; spawn failures and mid-execution faults are.
func (r *Runner) runProcess(ctx context.Context, argv []string, env []string) (string, string, int, bool, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = r.root
	cmd.Env = env
	cmd.Stdin = nil // reads hit EOF immediately; no interactive hang

	var stdout, stderr lockedBuffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// POSIX: own process group so the whole tree can be killed.
	setSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", 0, false, &ExecutionError{Context: "git executable not found in PATH"}
		}
		return "", "", 0, false, &ExecutionError{Context: "failed to spawn git", Err: err}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(time.Duration(r.cfg.TimeoutSeconds * float64(time.Second)))
	defer timer.Stop()

	select {
	case waitErr := <-done:
		exitCode := 0
		if waitErr != nil {
			var exitErr *exec.ExitError
			if !errors.As(waitErr, &exitErr) {
				// I/O or wait fault, not a command failure. The process has
				// already been reaped; nothing further to clean up.
				return "", "", 0, false, &ExecutionError{Context: "failed while running git", Err: waitErr}
			}
			exitCode = exitErr.ExitCode()
		}
		return stdout.String(), stderr.String(), exitCode, false, nil

	case <-timer.C:
		r.killAndReap(cmd, done)
		// Last drain of whatever the pipes produced before the kill.
		return stdout.String(), stderr.String(), timeoutExitCode, true, nil

	case <-ctx.Done():
		r.killAndReap(cmd, done)
		return "", "", 0, false, &ExecutionError{Context: "git run canceled", Err: ctx.Err()}
	}
}

// killAndReap force-terminates the child (group/tree, platform specific)
// and waits a bounded interval for the reap. Failures are swallowed: this
// is best-effort cleanup and must never block the caller.
func (r *Runner) killAndReap(cmd *exec.Cmd, done <-chan error) {
	terminate(cmd)
	select {
	case <-done:
	case <-time.After(reapTimeout):
		r.log.Warn("timed-out git process not reaped within bound")
	}
}
