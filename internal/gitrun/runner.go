package gitrun

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adina8244/grounded-git-mcp/internal/logging"
)

// gitBinary is the tool name resolved via PATH. Never invoked through a shell.
const gitBinary = "git"

// Config holds runner tunables. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// TimeoutSeconds is the hard wall-clock limit per invocation.
	TimeoutSeconds float64

	// MaxOutputChars caps len(stdout)+len(stderr).
	MaxOutputChars int

	// ReadOnlyAllowlist is the verb set permitted in read-only mode.
	ReadOnlyAllowlist []string
}

// DefaultConfig returns the stock runner configuration.
func DefaultConfig() Config {
	return Config{
		TimeoutSeconds:    3.0,
		MaxOutputChars:    80_000,
		ReadOnlyAllowlist: defaultReadOnlyAllowlist,
	}
}

// Options control a single Run call.
type Options struct {
	// ReadOnly enables the allowlist/flag policy gate. The approval flow is
	// the only caller that sets this to false.
	ReadOnly bool

	// ExtraEnv is merged over the controlled environment, overriding it.
	ExtraEnv map[string]string
}

// Runner executes git commands inside one resolved repository root.
// The root is immutable for the runner's lifetime.
type Runner struct {
	root string
	cfg  Config
	log  *logrus.Entry
}

// New creates a Runner bound to root. The root is resolved and validated;
// a missing or non-directory path yields *InvalidRootError.
func New(root string, cfg Config) (*Runner, error) {
	resolved, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	if len(cfg.ReadOnlyAllowlist) == 0 {
		cfg.ReadOnlyAllowlist = defaultReadOnlyAllowlist
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultConfig().TimeoutSeconds
	}
	if cfg.MaxOutputChars <= 0 {
		cfg.MaxOutputChars = DefaultConfig().MaxOutputChars
	}
	return &Runner{
		root: resolved,
		cfg:  cfg,
		log:  logging.Component("runner"),
	}, nil
}

// Root returns the resolved repository root.
func (r *Runner) Root() string {
	return r.root
}

// Run validates args against the policy for the given mode, spawns git with
// a controlled environment, and returns a Result. A non-zero git exit is
// reported in the Result, not as an error; see RequireOk.
func (r *Runner) Run(ctx context.Context, args []string, opts Options) (Result, error) {
	if err := r.validateArgs(args, opts.ReadOnly); err != nil {
		return Result{}, err
	}

	argv := append([]string{gitBinary}, args...)
	env := buildEnv(opts.ExtraEnv)

	start := time.Now()
	stdout, stderr, exitCode, timedOut, err := r.runProcess(ctx, argv, env)
	durationMS := time.Since(start).Milliseconds()
	if err != nil {
		return Result{}, err
	}

	stdout, stderr, truncated := applyOutputCeiling(stdout, stderr, r.cfg.MaxOutputChars)

	res := Result{
		Argv:            argv,
		Root:            r.root,
		Stdout:          stdout,
		Stderr:          stderr,
		ExitCode:        exitCode,
		DurationMS:      durationMS,
		TimedOut:        timedOut,
		OutputTruncated: truncated,
	}

	r.log.WithFields(logging.Fields{
		"args":        strings.Join(args, " "),
		"read_only":   opts.ReadOnly,
		"exit_code":   exitCode,
		"duration_ms": durationMS,
		"timed_out":   timedOut,
	}).Debug("git run")

	return res, nil
}

// ReadOnly is shorthand for Run with the read-only policy enabled.
func (r *Runner) ReadOnly(ctx context.Context, args ...string) (Result, error) {
	return r.Run(ctx, args, Options{ReadOnly: true})
}

// RequireOk converts a non-zero exit into *ExecutionError, attaching the
// given context and trimmed stderr. Passes successful results through.
func RequireOk(res Result, context string) (Result, error) {
	if res.ExitCode != 0 {
		return res, &ExecutionError{
			Context: context + " failed: " + strings.TrimSpace(res.Stderr),
		}
	}
	return res, nil
}
