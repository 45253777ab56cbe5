// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newGrepCmd creates the grep command.
func newGrepCmd() *cobra.Command {
	var pathspec string
	var ignoreCase bool
	var maxHits int

	cmd := &cobra.Command{
		Use:   "grep <pattern>",
		Short: "Search tracked content",
		Long: `Search tracked content with git grep. Hits come back as
file:line:content, bounded at 200 by default.

Examples:
  grounded-git-mcp grep "func main"
  grounded-git-mcp grep -i todo --path "*.go"
  grounded-git-mcp grep "copyright" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrep(cmd, args[0], pathspec, ignoreCase, maxHits)
		},
	}
	cmd.Flags().StringVar(&pathspec, "path", "", "Limit the search to this pathspec")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Case-insensitive search")
	cmd.Flags().IntVar(&maxHits, "max-hits", 200, "Maximum hits to return")
	return cmd
}

func runGrep(cmd *cobra.Command, pattern, pathspec string, ignoreCase bool, maxHits int) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.Grep(cmd.Context(), r, pattern, inspect.GrepOptions{
		Pathspec:   pathspec,
		IgnoreCase: ignoreCase,
		MaxHits:    maxHits,
	})
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	for _, hit := range result.Hits {
		printer.Println(hit)
	}
	printer.Print("%d hit(s)\n", result.Count)
	return nil
}
