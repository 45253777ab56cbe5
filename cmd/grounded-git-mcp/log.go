// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newLogCmd creates the log command.
func newLogCmd() *cobra.Command {
	var n int
	var format string
	var date string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show compact commit log",
		Long: `Show compact commit log lines, newest first, bounded at 200 entries.

Examples:
  grounded-git-mcp log
  grounded-git-mcp log -n 50
  grounded-git-mcp log --format "%h %s" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(cmd, n, format, date)
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 20, "Number of commits to show")
	cmd.Flags().StringVar(&format, "format", "", "Git pretty format (default '%h %ad %s (%an)')")
	cmd.Flags().StringVar(&date, "date", "", "Git date format (default short)")
	return cmd
}

func runLog(cmd *cobra.Command, n int, format, date string) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.Log(cmd.Context(), r, n, format, date)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	for _, line := range result.Lines {
		printer.Println(line)
	}
	return nil
}
