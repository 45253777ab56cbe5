// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newBlameCmd creates the blame command.
func newBlameCmd() *cobra.Command {
	var startLine int
	var endLine int

	cmd := &cobra.Command{
		Use:   "blame <file>",
		Short: "Annotate a line range of a file",
		Long: `Annotate a line range of one file with line-porcelain blame output.

Examples:
  grounded-git-mcp blame internal/server.go
  grounded-git-mcp blame main.go --start 10 --end 40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlame(cmd, args[0], startLine, endLine)
		},
	}
	cmd.Flags().IntVar(&startLine, "start", 1, "First line of the range")
	cmd.Flags().IntVar(&endLine, "end", 200, "Last line of the range")
	return cmd
}

func runBlame(cmd *cobra.Command, path string, startLine, endLine int) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.Blame(cmd.Context(), r, path, startLine, endLine)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Println(result.Porcelain)
	return nil
}
