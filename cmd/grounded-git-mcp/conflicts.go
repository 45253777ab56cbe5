// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newConflictsCmd creates the conflicts command.
func newConflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "List merge-conflicted paths",
		Long: `List paths currently in a merge-conflicted (unmerged) state.

Examples:
  grounded-git-mcp conflicts
  grounded-git-mcp conflicts --json`,
		RunE: runConflicts,
	}
}

func runConflicts(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.DetectConflicts(cmd.Context(), r)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	if result.Count == 0 {
		printer.Println("no conflicts")
		return nil
	}
	for _, path := range result.Conflicts {
		printer.Println(path)
	}
	printer.Print("%d conflicted path(s)\n", result.Count)
	return nil
}
