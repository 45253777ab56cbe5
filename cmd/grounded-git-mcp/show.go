// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	var noPatch bool

	cmd := &cobra.Command{
		Use:   "show <commit>",
		Short: "Show one commit",
		Long: `Show one commit with its stat block and patch.

Examples:
  grounded-git-mcp show HEAD
  grounded-git-mcp show abc1234 --no-patch
  grounded-git-mcp show HEAD~2 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], !noPatch)
		},
	}
	cmd.Flags().BoolVar(&noPatch, "no-patch", false, "Show the stat block only")
	return cmd
}

func runShow(cmd *cobra.Command, commit string, patch bool) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.ShowCommit(cmd.Context(), r, commit, patch)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Println(result.Text)
	if result.Truncated {
		printer.Warn("output truncated")
	}
	return nil
}
