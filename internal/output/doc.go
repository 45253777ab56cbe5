// Package output provides structured output handling for the grounded-git-mcp CLI.
//
// This package handles both human-readable and JSON output formats. Every
// command works for human operators and for automated agents alike: agents
// pass --json and get structured payloads, humans get lipgloss-styled text.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches format
// based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "Proposal created", "confirmation_id": id})
//	printer.Error(err)
//	printer.Println("Some text")
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"message": "...", "confirmation_id": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess     // 0: Success
//	output.ExitUserError   // 1: User error (bad args, unknown id, bad phrase)
//	output.ExitSystemError // 2: System error (git spawn failed, I/O error)
//	output.ExitPolicy      // 3: Policy violation (blocked by safety policy)
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("unknown confirmation id")
//	output.NewSystemError("git executable not found in PATH")
//	output.NewPolicyError("blocked git subcommand in read-only mode: push")
//
// These errors carry exit codes that are used for both JSON error output
// and process exit codes.
package output
