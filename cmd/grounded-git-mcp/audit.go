// Package main provides the entry point for the grounded-git-mcp CLI.
package main

import (
	"time"

	"github.com/spf13/cobra"
)

// newAuditCmd creates the audit command.
func newAuditCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the approval audit trail",
		Long: `Show the append-only audit trail of proposals and executions for this
repository, oldest first.

Examples:
  grounded-git-mcp audit
  grounded-git-mcp audit --last 10
  grounded-git-mcp audit --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, last)
		},
	}
	cmd.Flags().IntVar(&last, "last", 0, "Show only the last N records")
	return cmd
}

func runAudit(cmd *cobra.Command, last int) error {
	printer := newPrinter(cmd)

	store, err := repoStore(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	records, err := store.AuditRecords()
	if err != nil {
		err = wrapErr(err)
		printer.Error(err)
		return err
	}
	if last > 0 && len(records) > last {
		records = records[len(records)-last:]
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"records": records,
			"count":   len(records),
		})
	}

	if len(records) == 0 {
		printer.Println("no audit records")
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			time.Unix(rec.TS, 0).Format(time.RFC3339),
			string(rec.Action),
			rec.ConfirmationID,
		})
	}
	printer.Table([]string{"Time", "Action", "Confirmation"}, rows)
	printer.Print("%d record(s)\n", len(records))
	return nil
}
