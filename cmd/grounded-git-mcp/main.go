// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/adina8244/grounded-git-mcp/internal/config"
	"github.com/adina8244/grounded-git-mcp/internal/envfile"
	"github.com/adina8244/grounded-git-mcp/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// rootFlag reads the persistent --root flag.
func rootFlag(cmd *cobra.Command) string {
	flag := cmd.Flags().Lookup("root")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("root")
	}
	if flag == nil {
		return "."
	}
	return flag.Value.String()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the grounded-git-mcp CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grounded-git-mcp",
		Short: "A git safety layer for automated agents",
		Long: `Grounded Git - a git safety layer for automated agents.

Read operations run through a policy-enforcing runner (allowlist, dangerous
flag gate, timeout, output ceiling). Mutating operations go through a
propose-confirm-execute flow: a proposal mints a one-time token, a human
relays the confirmation phrase, and execution re-verifies the repository
state captured at approval time before anything runs.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'grounded-git-mcp --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables already set always take precedence over file
	// values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("root", "C", ".", "Repository root to operate on")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins.
//
// Resolution order:
//  1. $CWD/.env.local               (per-repo override, gitignored)
//  2. $CWD/.env                     (per-repo)
//  3. ~/.config/grounded-git-mcp/env (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspection Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "approval", Title: "Approval Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Inspection commands: read-only, always safe
	addGroupedCommand(cmd, newInfoCmd(), "inspect")
	addGroupedCommand(cmd, newStatusCmd(), "inspect")
	addGroupedCommand(cmd, newLogCmd(), "inspect")
	addGroupedCommand(cmd, newDiffCmd(), "inspect")
	addGroupedCommand(cmd, newShowCmd(), "inspect")
	addGroupedCommand(cmd, newGrepCmd(), "inspect")
	addGroupedCommand(cmd, newBlameCmd(), "inspect")
	addGroupedCommand(cmd, newTreeCmd(), "inspect")
	addGroupedCommand(cmd, newCatFileCmd(), "inspect")
	addGroupedCommand(cmd, newConflictsCmd(), "inspect")

	// Approval commands: the mutating path
	addGroupedCommand(cmd, newProposeCmd(), "approval")
	addGroupedCommand(cmd, newExecuteCmd(), "approval")
	addGroupedCommand(cmd, newAuditCmd(), "approval")

	// Admin commands
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
