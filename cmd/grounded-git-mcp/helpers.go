// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/approval"
	"github.com/adina8244/grounded-git-mcp/internal/config"
	"github.com/adina8244/grounded-git-mcp/internal/confirm"
	"github.com/adina8244/grounded-git-mcp/internal/gitrun"
	"github.com/adina8244/grounded-git-mcp/internal/output"
)

// newPrinter builds the printer for a command, honoring --json and TTY
// detection.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), output.IsTTY(cmd.OutOrStdout()))
}

// repoRunner resolves the --root flag into a policy-enforcing runner
// configured from that repository's settings.
func repoRunner(cmd *cobra.Command) (*gitrun.Runner, config.Settings, error) {
	root := rootFlag(cmd)
	resolved, err := gitrun.ResolveRoot(root)
	if err != nil {
		return nil, config.Settings{}, wrapErr(err)
	}
	settings, err := config.Load(resolved)
	if err != nil {
		return nil, config.Settings{}, wrapErr(err)
	}

	cfg := gitrun.DefaultConfig()
	cfg.TimeoutSeconds = settings.TimeoutSeconds
	cfg.MaxOutputChars = settings.MaxOutputChars

	r, err := gitrun.New(resolved, cfg)
	if err != nil {
		return nil, config.Settings{}, wrapErr(err)
	}
	return r, settings, nil
}

// repoFlow builds the approval flow for the --root repository.
func repoFlow(cmd *cobra.Command) (*approval.Flow, error) {
	r, settings, err := repoRunner(cmd)
	if err != nil {
		return nil, err
	}
	store, err := confirm.NewFileStore(r.Root())
	if err != nil {
		return nil, wrapErr(err)
	}
	ttl := time.Duration(settings.ConfirmTTLSeconds) * time.Second
	return approval.New(r, store).WithTTL(ttl), nil
}

// repoStore opens the confirmation store for the --root repository.
func repoStore(cmd *cobra.Command) (*confirm.FileStore, error) {
	r, _, err := repoRunner(cmd)
	if err != nil {
		return nil, err
	}
	store, err := confirm.NewFileStore(r.Root())
	if err != nil {
		return nil, wrapErr(err)
	}
	return store, nil
}

// wrapErr maps domain errors onto CLI exit codes: policy violations exit 3,
// bad input and denied approvals exit 1, everything else exits 2.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var policyErr *gitrun.PolicyError
	if errors.As(err, &policyErr) {
		return output.NewPolicyErrorWithCause(policyErr.Reason, err)
	}

	var rootErr *gitrun.InvalidRootError
	if errors.As(err, &rootErr) {
		return output.NewUserError(rootErr.Error())
	}

	var deniedErr *approval.DeniedError
	if errors.As(err, &deniedErr) {
		return output.NewUserError(deniedErr.Reason)
	}

	return output.NewSystemErrorWithCause(err.Error(), err)
}
