package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/adina8244/grounded-git-mcp/internal/approval"
)

// registerApprovalTools adds the propose/execute pair to the server.
func registerApprovalTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "propose_git_command",
		Description: "Create a one-time approval token for a specific mutating git command. " +
			"The command is NOT executed; the returned confirmation phrase must be relayed " +
			"verbatim by a human to execute_confirmed.",
		Annotations: proposeAnnotations(),
	}, handlePropose())

	mcp.AddTool(server, &mcp.Tool{
		Name: "execute_confirmed",
		Description: "Execute a previously proposed git command after explicit human confirmation. " +
			"Fails without running git if the token is expired, already used, tampered with, " +
			"or the repository state changed since approval.",
		Annotations: executeAnnotations(),
	}, handleExecute())
}

// ProposeInput is the input for propose_git_command.
type ProposeInput struct {
	Root           string   `json:"root,omitempty"            jsonschema:"repository root path (default current directory)"`
	Args           []string `json:"args"                      jsonschema:"git arguments without the leading 'git'"`
	ExpectedBranch string   `json:"expected_branch,omitempty" jsonschema:"require this branch to still be checked out at execution"`
	RequireClean   bool     `json:"require_clean,omitempty"   jsonschema:"require a clean working tree at execution"`
}

func handlePropose() mcp.ToolHandlerFor[ProposeInput, approval.Proposal] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProposeInput) (*mcp.CallToolResult, approval.Proposal, error) {
		flow, err := flowFor(input.Root)
		if err != nil {
			return nil, approval.Proposal{}, err
		}
		out, err := flow.Propose(ctx, input.Args, approval.ProposeOptions{
			ExpectedBranch: input.ExpectedBranch,
			RequireClean:   input.RequireClean,
		})
		return nil, out, err
	}
}

// ExecuteInput is the input for execute_confirmed.
type ExecuteInput struct {
	Root             string `json:"root,omitempty"    jsonschema:"repository root path (default current directory)"`
	ConfirmationID   string `json:"confirmation_id"   jsonschema:"id returned by propose_git_command"`
	UserConfirmation string `json:"user_confirmation" jsonschema:"the exact phrase 'I CONFIRM <id>' relayed by the user"`
}

func handleExecute() mcp.ToolHandlerFor[ExecuteInput, approval.ExecutionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteInput) (*mcp.CallToolResult, approval.ExecutionResult, error) {
		flow, err := flowFor(input.Root)
		if err != nil {
			return nil, approval.ExecutionResult{}, err
		}
		out, err := flow.Execute(ctx, input.ConfirmationID, input.UserConfirmation)
		return nil, out, err
	}
}
