// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/approval"
)

// newProposeCmd creates the propose command.
func newProposeCmd() *cobra.Command {
	var expectedBranch string
	var requireClean bool

	cmd := &cobra.Command{
		Use:   "propose <git-args>...",
		Short: "Propose a mutating git command for approval",
		Long: `Create a one-time approval token for a specific mutating git command.
The command is NOT executed; relay the printed confirmation phrase to
'execute' to run it. Tokens expire automatically and execution re-verifies
the repository state captured here.

Use -- before the git args so their flags are not parsed as ours.

Examples:
  grounded-git-mcp propose -- commit -m "message"
  grounded-git-mcp propose --require-clean -- push origin main
  grounded-git-mcp propose --expected-branch main -- merge feature`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropose(cmd, args, expectedBranch, requireClean)
		},
	}
	cmd.Flags().StringVar(&expectedBranch, "expected-branch", "", "Require this branch at execution time")
	cmd.Flags().BoolVar(&requireClean, "require-clean", false, "Require a clean working tree at execution time")
	return cmd
}

func runPropose(cmd *cobra.Command, args []string, expectedBranch string, requireClean bool) error {
	printer := newPrinter(cmd)

	flow, err := repoFlow(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	proposal, err := flow.Propose(cmd.Context(), args, approval.ProposeOptions{
		ExpectedBranch: expectedBranch,
		RequireClean:   requireClean,
	})
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(proposal)
	}

	printer.Section("Proposal created")
	printer.KeyValue("ID", proposal.ConfirmationID)
	printer.KeyValue("Command", "git "+strings.Join(proposal.Args, " "))
	printer.KeyValue("Risk", string(proposal.Classification.Risk))
	printer.KeyValue("Reason", proposal.Classification.Reason)
	printer.KeyValue("Confirm with", proposal.PromptToConfirm)
	for _, note := range proposal.Notes {
		printer.Warn("%s", note)
	}
	return nil
}
