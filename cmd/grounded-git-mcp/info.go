// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// newInfoCmd creates the info command.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show repository metadata",
		Long: `Show high-signal repository metadata: root, current branch, HEAD sha,
and the upstream branch when one is configured.

Examples:
  grounded-git-mcp info          # Human-readable metadata
  grounded-git-mcp info --json   # JSON for scripting`,
		RunE: runInfo,
	}
}

func runInfo(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	r, _, err := repoRunner(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := inspect.RepoInfo(cmd.Context(), r)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.KeyValue("Root", result.Root)
	if !result.IsGit {
		printer.Warn("not a git repository")
		return nil
	}
	printer.KeyValue("Branch", result.Branch)
	printer.KeyValue("HEAD", result.Head)
	if result.Upstream != "" {
		printer.KeyValue("Upstream", result.Upstream)
	}
	return nil
}
