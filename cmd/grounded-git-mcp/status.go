// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var maxEntries int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show working tree status (porcelain)",
		Long: `Show machine-readable working tree status, parsed from porcelain v1
output. Renames keep both paths.

Examples:
  grounded-git-mcp status
  grounded-git-mcp status --max-entries 50
  grounded-git-mcp status --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, maxEntries)
		},
	}
	cmd.Flags().IntVar(&maxEntries, "max-entries", 200, "Maximum entries to show")
	return cmd
}

func runStatus(cmd *cobra.Command, maxEntries int) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.Status(cmd.Context(), r, maxEntries)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	if result.Count == 0 {
		printer.Println("working tree clean")
		return nil
	}
	rows := make([][]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		path := e.Path
		if e.OrigPath != "" {
			path = e.OrigPath + " -> " + e.Path
		}
		rows = append(rows, []string{e.XY, path})
	}
	printer.Table([]string{"XY", "Path"}, rows)
	return nil
}
