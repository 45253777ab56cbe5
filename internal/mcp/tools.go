package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/adina8244/grounded-git-mcp/internal/inspect"
)

// RootInput is the shared input for tools that only need a repository.
type RootInput struct {
	Root string `json:"root,omitempty" jsonschema:"repository root path (default current directory)"`
}

// registerInspectTools adds the read-only repository tools to the server.
func registerInspectTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "repo_info",
		Description: "High-signal repository metadata: root, current branch, HEAD sha, and upstream if configured.",
		Annotations: readOnlyAnnotations(),
	}, handleRepoInfo())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Machine-readable working tree status (porcelain v1), including renames and untracked files.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_summary",
		Description: "Changed file names with per-status counts. Supports staged-only and diffing against a ref.",
		Annotations: readOnlyAnnotations(),
	}, handleDiffSummary())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff_range",
		Description: "Patch text between two refs. base..head for changes in head not in base, base...head from the merge base.",
		Annotations: readOnlyAnnotations(),
	}, handleDiffRange())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log",
		Description: "Compact commit log lines, newest first. Bounded at 200 entries.",
		Annotations: readOnlyAnnotations(),
	}, handleLog())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show",
		Description: "Show one commit with its stat block and optional patch.",
		Annotations: readOnlyAnnotations(),
	}, handleShow())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "grep",
		Description: "Search tracked content with git grep. Returns file:line:content hits, bounded.",
		Annotations: readOnlyAnnotations(),
	}, handleGrep())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "blame",
		Description: "Line-porcelain blame for a line range of one file.",
		Annotations: readOnlyAnnotations(),
	}, handleBlame())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tree",
		Description: "List every path in the repository tree at a ref, bounded.",
		Annotations: readOnlyAnnotations(),
	}, handleTree())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "file_at_ref",
		Description: "Read a file's content at a git ref without checking out. The path is confined to the repository.",
		Annotations: readOnlyAnnotations(),
	}, handleFileAtRef())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_conflicts",
		Description: "List paths currently in a merge-conflicted (unmerged) state.",
		Annotations: readOnlyAnnotations(),
	}, handleDetectConflicts())
}

func handleRepoInfo() mcp.ToolHandlerFor[RootInput, inspect.RepoInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RootInput) (*mcp.CallToolResult, inspect.RepoInfoResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.RepoInfoResult{}, err
		}
		out, err := inspect.RepoInfo(ctx, r)
		return nil, out, err
	}
}

// StatusInput selects the repository and caps the entry count.
type StatusInput struct {
	Root       string `json:"root,omitempty"        jsonschema:"repository root path (default current directory)"`
	MaxEntries int    `json:"max_entries,omitempty" jsonschema:"maximum entries to return (default 200)"`
}

func handleStatus() mcp.ToolHandlerFor[StatusInput, inspect.StatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, inspect.StatusResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.StatusResult{}, err
		}
		maxEntries := input.MaxEntries
		if maxEntries <= 0 {
			maxEntries = 200
		}
		out, err := inspect.Status(ctx, r, maxEntries)
		return nil, out, err
	}
}

// DiffSummaryInput selects what the summary diffs against.
type DiffSummaryInput struct {
	Root    string `json:"root,omitempty"    jsonschema:"repository root path (default current directory)"`
	Staged  bool   `json:"staged,omitempty"  jsonschema:"diff the index instead of the working tree"`
	Against string `json:"against,omitempty" jsonschema:"diff against this ref instead of the index"`
}

func handleDiffSummary() mcp.ToolHandlerFor[DiffSummaryInput, inspect.DiffSummaryOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiffSummaryInput) (*mcp.CallToolResult, inspect.DiffSummaryOutput, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.DiffSummaryOutput{}, err
		}
		out, err := inspect.DiffSummary(ctx, r, inspect.DiffSummaryOptions{
			Staged:  input.Staged,
			Against: input.Against,
		})
		return nil, out, err
	}
}

// DiffRangeInput describes a two-ref diff request.
type DiffRangeInput struct {
	Root      string   `json:"root,omitempty"       jsonschema:"repository root path (default current directory)"`
	Base      string   `json:"base,omitempty"       jsonschema:"base ref (default HEAD~1)"`
	Head      string   `json:"head,omitempty"       jsonschema:"head ref (default HEAD)"`
	TripleDot bool     `json:"triple_dot,omitempty" jsonschema:"diff from the merge base instead of base itself"`
	Pathspec  []string `json:"pathspec,omitempty"   jsonschema:"limit the diff to these paths"`
}

func handleDiffRange() mcp.ToolHandlerFor[DiffRangeInput, inspect.DiffRangeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiffRangeInput) (*mcp.CallToolResult, inspect.DiffRangeResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.DiffRangeResult{}, err
		}
		out, err := inspect.DiffRange(ctx, r, inspect.DiffRangeOptions{
			Base:      input.Base,
			Head:      input.Head,
			TripleDot: input.TripleDot,
			Pathspec:  input.Pathspec,
		})
		return nil, out, err
	}
}

// LogInput tunes the commit log listing.
type LogInput struct {
	Root   string `json:"root,omitempty"   jsonschema:"repository root path (default current directory)"`
	N      int    `json:"n,omitempty"      jsonschema:"number of commits (default 20, max 200)"`
	Format string `json:"format,omitempty" jsonschema:"git pretty format (default '%h %ad %s (%an)')"`
	Date   string `json:"date,omitempty"   jsonschema:"git date format (default short)"`
}

func handleLog() mcp.ToolHandlerFor[LogInput, inspect.LogResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LogInput) (*mcp.CallToolResult, inspect.LogResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.LogResult{}, err
		}
		n := input.N
		if n <= 0 {
			n = 20
		}
		out, err := inspect.Log(ctx, r, n, input.Format, input.Date)
		return nil, out, err
	}
}

// ShowInput names the commit to show.
type ShowInput struct {
	Root   string `json:"root,omitempty"  jsonschema:"repository root path (default current directory)"`
	Commit string `json:"commit"          jsonschema:"commit sha or ref to show"`
	Patch  bool   `json:"patch,omitempty" jsonschema:"include the full patch (default stat only)"`
}

func handleShow() mcp.ToolHandlerFor[ShowInput, inspect.ShowResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ShowInput) (*mcp.CallToolResult, inspect.ShowResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.ShowResult{}, err
		}
		out, err := inspect.ShowCommit(ctx, r, input.Commit, input.Patch)
		return nil, out, err
	}
}

// GrepInput describes a tracked-content search.
type GrepInput struct {
	Root       string `json:"root,omitempty"        jsonschema:"repository root path (default current directory)"`
	Pattern    string `json:"pattern"               jsonschema:"pattern to search for"`
	Pathspec   string `json:"pathspec,omitempty"    jsonschema:"limit the search to this pathspec"`
	IgnoreCase bool   `json:"ignore_case,omitempty" jsonschema:"case-insensitive search"`
	MaxHits    int    `json:"max_hits,omitempty"    jsonschema:"maximum hits to return (default 200)"`
}

func handleGrep() mcp.ToolHandlerFor[GrepInput, inspect.GrepResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GrepInput) (*mcp.CallToolResult, inspect.GrepResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.GrepResult{}, err
		}
		out, err := inspect.Grep(ctx, r, input.Pattern, inspect.GrepOptions{
			Pathspec:   input.Pathspec,
			IgnoreCase: input.IgnoreCase,
			MaxHits:    input.MaxHits,
		})
		return nil, out, err
	}
}

// BlameInput names the file and line range to annotate.
type BlameInput struct {
	Root      string `json:"root,omitempty"       jsonschema:"repository root path (default current directory)"`
	Path      string `json:"path"                 jsonschema:"file path relative to the repository root"`
	StartLine int    `json:"start_line,omitempty" jsonschema:"first line of the range (default 1)"`
	EndLine   int    `json:"end_line,omitempty"   jsonschema:"last line of the range (default 200)"`
}

func handleBlame() mcp.ToolHandlerFor[BlameInput, inspect.BlameResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BlameInput) (*mcp.CallToolResult, inspect.BlameResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.BlameResult{}, err
		}
		start, end := input.StartLine, input.EndLine
		if start <= 0 {
			start = 1
		}
		if end <= 0 {
			end = 200
		}
		out, err := inspect.Blame(ctx, r, input.Path, start, end)
		return nil, out, err
	}
}

// TreeInput selects the ref to list.
type TreeInput struct {
	Root string `json:"root,omitempty" jsonschema:"repository root path (default current directory)"`
	Ref  string `json:"ref,omitempty"  jsonschema:"ref to list (default HEAD)"`
}

func handleTree() mcp.ToolHandlerFor[TreeInput, inspect.TreeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TreeInput) (*mcp.CallToolResult, inspect.TreeResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.TreeResult{}, err
		}
		out, err := inspect.Tree(ctx, r, input.Ref)
		return nil, out, err
	}
}

// FileAtRefInput names the ref and path to read.
type FileAtRefInput struct {
	Root string `json:"root,omitempty" jsonschema:"repository root path (default current directory)"`
	Ref  string `json:"ref,omitempty"  jsonschema:"ref to read at (default HEAD)"`
	Path string `json:"path"           jsonschema:"file path relative to the repository root"`
}

func handleFileAtRef() mcp.ToolHandlerFor[FileAtRefInput, inspect.FileAtRefResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FileAtRefInput) (*mcp.CallToolResult, inspect.FileAtRefResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.FileAtRefResult{}, err
		}
		out, err := inspect.FileAtRef(ctx, r, input.Ref, input.Path)
		return nil, out, err
	}
}

func handleDetectConflicts() mcp.ToolHandlerFor[RootInput, inspect.ConflictsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RootInput) (*mcp.CallToolResult, inspect.ConflictsResult, error) {
		r, _, err := runnerFor(input.Root)
		if err != nil {
			return nil, inspect.ConflictsResult{}, err
		}
		out, err := inspect.DetectConflicts(ctx, r)
		return nil, out, err
	}
}
