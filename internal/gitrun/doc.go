// Package gitrun executes git as a subprocess under a safety policy.
//
// This is the only package that spawns the git binary. Every invocation is
// bound to a resolved repository root, runs without a shell, with stdin
// closed and a non-interactive environment, under a hard wall-clock timeout
// and a combined stdout+stderr output ceiling.
//
// # Read-only mode
//
// By default the runner refuses anything outside a fixed allowlist of
// inspection verbs, and additionally rejects mutating flags and verb-level
// escapes (branch/tag deletion, remote mutation, config writes):
//
//	r, err := gitrun.New(root, gitrun.DefaultConfig())
//	res, err := r.ReadOnly(ctx, "status", "--porcelain=v1")
//
// Mutating commands only run with Options{ReadOnly: false}, which in this
// system is reachable solely through the approval flow.
//
// # Errors
//
//   - *InvalidRootError: the root path is missing or not a directory
//   - *PolicyError: the command was blocked by the safety policy
//   - *ExecutionError: git could not be located, spawned, or failed mid-run
//
// A non-zero exit from git is not an error by itself; it is reported in
// Result.ExitCode. Call sites that require success wrap results with
// RequireOk, which converts non-zero exits into *ExecutionError.
//
// # Timeouts
//
// On timeout the runner keeps whatever output was already drained, reports
// exit code 124 with TimedOut set, and kills the whole process group (POSIX,
// the child is started in its own group) or process tree (Windows, via
// taskkill). Cleanup waits are bounded so a stuck child can never hang the
// caller.
package gitrun
