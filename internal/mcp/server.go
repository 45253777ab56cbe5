// Package mcp provides the Model Context Protocol server for grounded-git.
// It exposes the read-only inspection operations and the propose/execute
// approval flow as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/adina8244/grounded-git-mcp/internal/approval"
	"github.com/adina8244/grounded-git-mcp/internal/config"
	"github.com/adina8244/grounded-git-mcp/internal/confirm"
	"github.com/adina8244/grounded-git-mcp/internal/gitrun"
)

// NewServer creates an MCP server with all grounded-git tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "grounded-git",
		Version: version,
	}, nil)
	registerInspectTools(server)
	registerApprovalTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for inspection tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// proposeAnnotations returns annotations for the propose tool: it writes
// to the confirmation ledger but never touches the repository.
func proposeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// executeAnnotations returns annotations for the execute tool, which runs
// a previously approved mutating git command.
func executeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		OpenWorldHint:   boolPtr(false),
	}
}

// runnerFor builds a policy-enforcing runner for the requested root,
// honoring that repository's settings. An empty root means the current
// directory.
func runnerFor(root string) (*gitrun.Runner, config.Settings, error) {
	if root == "" {
		root = "."
	}
	resolved, err := gitrun.ResolveRoot(root)
	if err != nil {
		return nil, config.Settings{}, err
	}
	settings, err := config.Load(resolved)
	if err != nil {
		return nil, config.Settings{}, err
	}

	cfg := gitrun.DefaultConfig()
	cfg.TimeoutSeconds = settings.TimeoutSeconds
	cfg.MaxOutputChars = settings.MaxOutputChars

	r, err := gitrun.New(resolved, cfg)
	if err != nil {
		return nil, config.Settings{}, err
	}
	return r, settings, nil
}

// flowFor builds the approval flow for a root, with the store and TTL that
// repository is configured for.
func flowFor(root string) (*approval.Flow, error) {
	r, settings, err := runnerFor(root)
	if err != nil {
		return nil, err
	}
	store, err := confirm.NewFileStore(r.Root())
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(settings.ConfirmTTLSeconds) * time.Second
	return approval.New(r, store).WithTTL(ttl), nil
}
