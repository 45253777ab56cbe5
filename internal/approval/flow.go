// Package approval implements the propose-confirm-execute flow for git
// commands that mutate the repository. A command is never run on first
// sight: propose mints a one-time confirmation token and records the exact
// repository state it was approved against; execute runs the command only
// after the human phrase, the token state, the command hash, and the
// recorded preconditions all check out, in that order, before anything is
// spawned.
package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adina8244/grounded-git-mcp/internal/confirm"
	"github.com/adina8244/grounded-git-mcp/internal/gitrun"
	"github.com/adina8244/grounded-git-mcp/internal/logging"
	"github.com/adina8244/grounded-git-mcp/internal/risk"
)

// DefaultTTL is how long a confirmation stays valid.
const DefaultTTL = 30 * time.Minute

// DeniedError rejects a proposal or execution for a reason the caller must
// surface verbatim: critical classification, bad phrase, expired token,
// broken precondition, hash mismatch.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return e.Reason
}

// Flow binds a runner and a confirmation store to one repository root.
type Flow struct {
	runner *gitrun.Runner
	store  confirm.Store
	ttl    time.Duration
	now    func() time.Time
	log    *logrus.Entry
}

// New creates a Flow with the default TTL.
func New(runner *gitrun.Runner, store confirm.Store) *Flow {
	return &Flow{
		runner: runner,
		store:  store,
		ttl:    DefaultTTL,
		now:    time.Now,
		log:    logging.Component("approval"),
	}
}

// WithTTL overrides the confirmation lifetime. Non-positive values keep
// the default.
func (f *Flow) WithTTL(ttl time.Duration) *Flow {
	if ttl > 0 {
		f.ttl = ttl
	}
	return f
}

// ProposeOptions carry the caller-selected preconditions for a proposal.
type ProposeOptions struct {
	ExpectedBranch string
	RequireClean   bool
}

// Proposal is the response to a successful propose: nothing has run yet.
type Proposal struct {
	Summary         string                `json:"summary"`
	ConfirmationID  string                `json:"confirmation_id"`
	Classification  risk.Classification   `json:"classification"`
	Args            []string              `json:"args"`
	ExpiresAt       int64                 `json:"expires_at"`
	Preconditions   confirm.Preconditions `json:"preconditions"`
	PromptToConfirm string                `json:"prompt_to_confirm"`
	Notes           []string              `json:"notes"`
}

// ExecutionResult is the outcome of a confirmed execution.
type ExecutionResult struct {
	Summary        string              `json:"summary"`
	ConfirmationID string              `json:"confirmation_id"`
	Classification risk.Classification `json:"classification"`
	Args           []string            `json:"args"`
	Output         gitrun.Result       `json:"output"`
}

// Propose classifies args, captures the current HEAD, and persists a
// one-time confirmation. The command is not executed. Critically classified
// commands are rejected outright.
func (f *Flow) Propose(ctx context.Context, args []string, opts ProposeOptions) (Proposal, error) {
	if len(args) == 0 {
		return Proposal{}, &DeniedError{Reason: "empty git args"}
	}

	classification := risk.Classify(args)
	if classification.Risk == risk.LevelCritical {
		return Proposal{}, &DeniedError{Reason: "command rejected: " + classification.Reason}
	}

	head, err := f.gitStdout(ctx, "propose(expected_head)", "rev-parse", "HEAD")
	if err != nil {
		return Proposal{}, err
	}

	now := f.now()
	c := &confirm.Confirmation{
		ID:             confirm.NewID(f.runner.Root(), args, now),
		Root:           f.runner.Root(),
		Args:           args,
		Classification: classification,
		CmdHash:        confirm.CommandHash(args),
		CreatedAt:      now.Unix(),
		ExpiresAt:      now.Add(f.ttl).Unix(),
		MaxUses:        1,
		Preconditions: confirm.Preconditions{
			ExpectedHead:       head,
			ExpectedBranch:     opts.ExpectedBranch,
			RequireClean:       opts.RequireClean,
			RequireNoConflicts: true,
		},
	}
	if err := f.store.Put(c); err != nil {
		return Proposal{}, fmt.Errorf("storing confirmation: %w", err)
	}

	f.log.WithFields(logging.Fields{
		"id":   c.ID,
		"risk": classification.Risk,
		"args": strings.Join(args, " "),
	}).Info("proposal created")

	return Proposal{
		Summary:         "Proposal created. Requires explicit confirmation to execute.",
		ConfirmationID:  c.ID,
		Classification:  classification,
		Args:            args,
		ExpiresAt:       c.ExpiresAt,
		Preconditions:   c.Preconditions,
		PromptToConfirm: c.Phrase(),
		Notes: []string{
			"Token is one-time and expires automatically.",
			"Execution fails if HEAD/branch changed or conflicts exist (per preconditions).",
		},
	}, nil
}

// Execute runs a previously proposed command. Every check below happens
// before the process is spawned; a failure at any step means git never ran.
func (f *Flow) Execute(ctx context.Context, confirmationID, userConfirmation string) (ExecutionResult, error) {
	c, err := f.store.Get(confirmationID)
	if err != nil {
		if errors.Is(err, confirm.ErrNotFound) {
			return ExecutionResult{}, &DeniedError{Reason: "unknown confirmation id"}
		}
		return ExecutionResult{}, fmt.Errorf("loading confirmation: %w", err)
	}

	if c.Root != f.runner.Root() {
		return ExecutionResult{}, &DeniedError{Reason: "confirmation belongs to a different repository root"}
	}
	if !c.CanUse(f.now()) {
		return ExecutionResult{}, &DeniedError{Reason: "token expired or already used"}
	}
	if strings.TrimSpace(userConfirmation) != c.Phrase() {
		return ExecutionResult{}, &DeniedError{Reason: "invalid confirmation phrase, use: " + c.Phrase()}
	}
	if confirm.CommandHash(c.Args) != c.CmdHash {
		return ExecutionResult{}, &DeniedError{Reason: "command hash mismatch (tampering detected)"}
	}
	if err := f.checkPreconditions(ctx, c.Preconditions); err != nil {
		return ExecutionResult{}, err
	}

	res, err := f.runner.Run(ctx, c.Args, gitrun.Options{ReadOnly: false})
	if err != nil {
		return ExecutionResult{}, err
	}

	// The spawn happened, so the token is spent now, success or not. A
	// failed mutating command needs a fresh proposal, never a silent retry.
	out := ExecutionResult{
		Summary:        "Executed confirmed git command.",
		ConfirmationID: c.ID,
		Classification: c.Classification,
		Args:           c.Args,
		Output:         res,
	}
	if err := f.store.MarkUsed(c, out); err != nil {
		return ExecutionResult{}, fmt.Errorf("consuming confirmation: %w", err)
	}
	if _, err := gitrun.RequireOk(res, "execute_confirmed"); err != nil {
		return ExecutionResult{}, err
	}

	f.log.WithFields(logging.Fields{
		"id":        c.ID,
		"exit_code": res.ExitCode,
	}).Info("confirmed command executed")
	return out, nil
}

// checkPreconditions re-verifies the repository state recorded at proposal
// time, naming the first assertion that no longer holds.
func (f *Flow) checkPreconditions(ctx context.Context, p confirm.Preconditions) error {
	if p.ExpectedBranch != "" {
		branch, err := f.gitStdout(ctx, "precondition(branch)", "rev-parse", "--abbrev-ref", "HEAD")
		if err != nil {
			return err
		}
		if branch != p.ExpectedBranch {
			return &DeniedError{Reason: fmt.Sprintf("branch changed: expected %s, got %s", p.ExpectedBranch, branch)}
		}
	}

	if p.ExpectedHead != "" {
		head, err := f.gitStdout(ctx, "precondition(head)", "rev-parse", "HEAD")
		if err != nil {
			return err
		}
		if head != p.ExpectedHead {
			return &DeniedError{Reason: "HEAD changed since approval"}
		}
	}

	if p.RequireClean {
		st, err := f.gitStdout(ctx, "precondition(clean)", "status", "--porcelain")
		if err != nil {
			return err
		}
		if st != "" {
			return &DeniedError{Reason: "working tree is not clean"}
		}
	}

	if p.RequireNoConflicts {
		unmerged, err := f.gitStdout(ctx, "precondition(conflicts)", "diff", "--name-only", "--diff-filter=U")
		if err != nil {
			return err
		}
		if unmerged != "" {
			return &DeniedError{Reason: "unmerged/conflicted files detected"}
		}
	}
	return nil
}

func (f *Flow) gitStdout(ctx context.Context, label string, args ...string) (string, error) {
	res, err := f.runner.ReadOnly(ctx, args...)
	if err != nil {
		return "", err
	}
	if res, err = gitrun.RequireOk(res, label); err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}
