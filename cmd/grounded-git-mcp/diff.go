// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newDiffCmd creates the diff command with summary and range subcommands.
func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Summarize or show changes",
	}
	cmd.AddCommand(newDiffSummaryCmd())
	cmd.AddCommand(newDiffRangeCmd())
	return cmd
}

func newDiffSummaryCmd() *cobra.Command {
	var staged bool
	var against string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Changed file names with per-status counts",
		Long: `Summarize changed files (name-status) with per-status counts.

Examples:
  grounded-git-mcp diff summary
  grounded-git-mcp diff summary --staged
  grounded-git-mcp diff summary --against HEAD~3 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiffSummary(cmd, staged, against)
		},
	}
	cmd.Flags().BoolVar(&staged, "staged", false, "Diff the index instead of the working tree")
	cmd.Flags().StringVar(&against, "against", "", "Diff against this ref")
	return cmd
}

func runDiffSummary(cmd *cobra.Command, staged bool, against string) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.DiffSummary(cmd.Context(), r, inspect.DiffSummaryOptions{
		Staged:  staged,
		Against: against,
	})
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	if result.Summary.Total == 0 {
		printer.Println("no changes")
		return nil
	}
	rows := make([][]string, 0, len(result.Summary.Files))
	for _, f := range result.Summary.Files {
		path := f.Path
		if f.From != "" {
			path = f.From + " -> " + f.To
		}
		rows = append(rows, []string{f.Status, path})
	}
	printer.Table([]string{"Status", "Path"}, rows)
	printer.Print("%d file(s) changed\n", result.Summary.Total)
	return nil
}

func newDiffRangeCmd() *cobra.Command {
	var base string
	var head string
	var tripleDot bool

	cmd := &cobra.Command{
		Use:   "range [pathspec...]",
		Short: "Patch text between two refs",
		Long: `Show the patch between two refs. base..head lists changes in head not
in base; --merge-base diffs from the merge base instead (base...head).

Examples:
  grounded-git-mcp diff range
  grounded-git-mcp diff range --base main --head feature
  grounded-git-mcp diff range --merge-base -- cmd/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiffRange(cmd, base, head, tripleDot, args)
		},
	}
	cmd.Flags().StringVar(&base, "base", "HEAD~1", "Base ref")
	cmd.Flags().StringVar(&head, "head", "HEAD", "Head ref")
	cmd.Flags().BoolVar(&tripleDot, "merge-base", false, "Diff from the merge base of the two refs")
	return cmd
}

func runDiffRange(cmd *cobra.Command, base, head string, tripleDot bool, pathspec []string) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.DiffRange(cmd.Context(), r, inspect.DiffRangeOptions{
		Base:      base,
		Head:      head,
		TripleDot: tripleDot,
		Pathspec:  pathspec,
	})
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Println(result.Diff)
	if result.Truncated {
		printer.Warn("diff truncated")
	}
	return nil
}
