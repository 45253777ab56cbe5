// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newCatFileCmd creates the cat-file command.
func newCatFileCmd() *cobra.Command {
	var ref string

	cmd := &cobra.Command{
		Use:   "cat-file <path>",
		Short: "Read a file at a ref",
		Long: `Read a file's content at a git ref without checking out. The path is
confined to the repository root.

Examples:
  grounded-git-mcp cat-file README.md
  grounded-git-mcp cat-file --ref v1.0.0 go.mod --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatFile(cmd, ref, args[0])
		},
	}
	cmd.Flags().StringVar(&ref, "ref", "HEAD", "Ref to read at")
	return cmd
}

func runCatFile(cmd *cobra.Command, ref, path string) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.FileAtRef(cmd.Context(), r, ref, path)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Println(result.Content)
	if result.Truncated {
		printer.Warn("content truncated at %d lines", result.LineCount)
	}
	return nil
}
