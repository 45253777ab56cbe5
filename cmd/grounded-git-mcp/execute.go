// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"github.com/spf13/cobra"
)

// newExecuteCmd creates the execute command.
func newExecuteCmd() *cobra.Command {
	var phrase string

	cmd := &cobra.Command{
		Use:   "execute <confirmation-id>",
		Short: "Execute a previously proposed command",
		Long: `Execute a previously proposed git command after explicit confirmation.
The phrase must be exactly "I CONFIRM <id>". Execution fails without
running git if the token is expired, already used, tampered with, or the
repository state changed since approval.

Examples:
  grounded-git-mcp execute ab12cd34ef56ab78 --confirm "I CONFIRM ab12cd34ef56ab78"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecute(cmd, args[0], phrase)
		},
	}
	cmd.Flags().StringVar(&phrase, "confirm", "", "The exact confirmation phrase")
	return cmd
}

func runExecute(cmd *cobra.Command, confirmationID, phrase string) error {
	printer := newPrinter(cmd)

	flow, err := repoFlow(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, err := flow.Execute(cmd.Context(), confirmationID, phrase)
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}

	printer.Section("Executed")
	printer.KeyValue("ID", result.ConfirmationID)
	printer.KeyValue("Exit code", "0")
	if result.Output.Stdout != "" {
		printer.Println(result.Output.Stdout)
	}
	if result.Output.Stderr != "" {
		printer.Warn("%s", result.Output.Stderr)
	}
	return nil
}
