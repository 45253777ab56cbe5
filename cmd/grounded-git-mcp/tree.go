// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newTreeCmd creates the tree command.
func newTreeCmd() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "List repository paths at a ref",
		Long: `List every path in the repository tree at a ref, bounded.

Examples:
  grounded-git-mcp tree
  grounded-git-mcp tree --ref v1.2.0 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, ref)
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "HEAD", "Ref to list")
	return cmd
}

func runTree(cmd *cobra.Command, ref string) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.Tree(cmd.Context(), r, ref)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	for _, item := range result.Items {
		printer.Println(item.Path)
	}
	if result.Truncated {
		printer.Warn("listing truncated (%d of %d paths)", result.Returned, result.Total)
	}
	return nil
}
