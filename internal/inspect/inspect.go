// Package inspect implements the read-only repository views: metadata,
// status, diffs, history, search, blame, trees, and file content at a ref.
// Every operation goes through the policy-enforcing runner in read-only
// mode, so nothing here can mutate the repository even when handed hostile
// arguments.
package inspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/adina8244/grounded-git-mcp/internal/gitrun"
)

// Caps on response size, applied after the runner's global output ceiling.
// These are shaping limits for agent consumption, not safety limits.
const (
	maxLogEntries  = 200
	maxGrepHits    = 200
	maxTreeEntries = 2000
	maxTextLines   = 2000
	maxShowChars   = 12_000
)

// RepoInfoResult is high-signal repository metadata.
type RepoInfoResult struct {
	Root     string `json:"root"`
	IsGit    bool   `json:"is_git"`
	Branch   string `json:"branch,omitempty"`
	Head     string `json:"head,omitempty"`
	Upstream string `json:"upstream,omitempty"`
}

// RepoInfo reports the root, current branch, HEAD sha, and the upstream
// branch when one is configured.
func RepoInfo(ctx context.Context, r *gitrun.Runner) (RepoInfoResult, error) {
	out := RepoInfoResult{Root: r.Root()}

	res, err := r.ReadOnly(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return out, err
	}
	if strings.TrimSpace(res.Stdout) != "true" {
		return out, nil
	}
	out.IsGit = true

	if res, err = r.ReadOnly(ctx, "rev-parse", "--abbrev-ref", "HEAD"); err != nil {
		return out, err
	}
	out.Branch = strings.TrimSpace(res.Stdout)

	if res, err = r.ReadOnly(ctx, "rev-parse", "HEAD"); err != nil {
		return out, err
	}
	out.Head = strings.TrimSpace(res.Stdout)

	// No upstream is a normal state, not an error.
	if res, err = r.ReadOnly(ctx, "rev-parse", "--abbrev-ref", "@{u}"); err != nil {
		return out, err
	}
	if res.ExitCode == 0 {
		out.Upstream = strings.TrimSpace(res.Stdout)
	}
	return out, nil
}

// StatusResult is the parsed porcelain status plus the raw run record.
type StatusResult struct {
	Entries []StatusEntry `json:"entries"`
	Count   int           `json:"count"`
	Git     gitrun.Result `json:"git"`
}

// Status returns machine-readable working-tree status, capped at maxEntries
// (values below 1 fall back to 1).
func Status(ctx context.Context, r *gitrun.Runner, maxEntries int) (StatusResult, error) {
	res, err := r.ReadOnly(ctx, "status", "--porcelain=v1")
	if err != nil {
		return StatusResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "status"); err != nil {
		return StatusResult{}, err
	}

	entries := ParseStatusPorcelain(res.Stdout)
	if maxEntries < 1 {
		maxEntries = 1
	}
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}
	return StatusResult{Entries: entries, Count: len(entries), Git: res}, nil
}

// DiffSummaryOptions select what the summary diffs against.
type DiffSummaryOptions struct {
	Staged  bool
	Against string
}

// DiffSummaryOutput pairs the parsed summary with the raw run record.
type DiffSummaryOutput struct {
	Summary DiffSummaryResult `json:"summary"`
	Git     gitrun.Result     `json:"git"`
}

// DiffSummary returns changed file names with per-status counts.
// Staged diffs the index; Against diffs against an arbitrary ref.
func DiffSummary(ctx context.Context, r *gitrun.Runner, opts DiffSummaryOptions) (DiffSummaryOutput, error) {
	args := []string{"diff", "--name-status"}
	if opts.Staged {
		args = append(args, "--cached")
	}
	if opts.Against != "" {
		args = append(args, opts.Against)
	}

	res, err := r.ReadOnly(ctx, args...)
	if err != nil {
		return DiffSummaryOutput{}, err
	}
	if res, err = gitrun.RequireOk(res, "diff_summary"); err != nil {
		return DiffSummaryOutput{}, err
	}
	return DiffSummaryOutput{Summary: ParseNameStatus(res.Stdout), Git: res}, nil
}

// DiffRangeOptions describe a two-ref diff.
type DiffRangeOptions struct {
	Base      string
	Head      string
	TripleDot bool
	Pathspec  []string
}

// DiffRangeResult carries the (possibly line-capped) patch text.
type DiffRangeResult struct {
	Range     string        `json:"range"`
	Base      string        `json:"base"`
	Head      string        `json:"head"`
	Truncated bool          `json:"truncated"`
	Diff      string        `json:"diff"`
	Git       gitrun.Result `json:"git"`
}

// DiffRange computes the patch between two refs. base..head lists changes
// in head not in base; base...head diffs from the merge base.
func DiffRange(ctx context.Context, r *gitrun.Runner, opts DiffRangeOptions) (DiffRangeResult, error) {
	base, head := opts.Base, opts.Head
	if base == "" {
		base = "HEAD~1"
	}
	if head == "" {
		head = "HEAD"
	}
	sep := ".."
	if opts.TripleDot {
		sep = "..."
	}
	rng := base + sep + head

	args := []string{"diff", "--patch", "--no-color", rng}
	var cleaned []string
	for _, p := range opts.Pathspec {
		if p = gitrun.NormalizeRelPath(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) > 0 {
		args = append(args, "--")
		args = append(args, cleaned...)
	}

	res, err := r.ReadOnly(ctx, args...)
	if err != nil {
		return DiffRangeResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "diff_range"); err != nil {
		return DiffRangeResult{}, err
	}

	text, truncated := capLines(res.Stdout, maxTextLines)
	return DiffRangeResult{
		Range: rng, Base: base, Head: head,
		Truncated: truncated, Diff: text, Git: res,
	}, nil
}

// LogResult is a list of formatted commit lines.
type LogResult struct {
	Lines []string      `json:"lines"`
	Git   gitrun.Result `json:"git"`
}

// Log returns up to n compact log lines. format and date default to a
// short human-and-agent-readable shape.
func Log(ctx context.Context, r *gitrun.Runner, n int, format, date string) (LogResult, error) {
	if n < 1 {
		n = 1
	}
	if n > maxLogEntries {
		n = maxLogEntries
	}
	if format == "" {
		format = "%h %ad %s (%an)"
	}
	if date == "" {
		date = "short"
	}

	res, err := r.ReadOnly(ctx,
		"log", fmt.Sprintf("-%d", n),
		"--pretty=format:"+format, "--date="+date)
	if err != nil {
		return LogResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "log"); err != nil {
		return LogResult{}, err
	}
	return LogResult{Lines: splitLines(res.Stdout), Git: res}, nil
}

// ShowResult is the text of one commit.
type ShowResult struct {
	Text      string        `json:"text"`
	Truncated bool          `json:"truncated"`
	Git       gitrun.Result `json:"git"`
}

// ShowCommit shows one commit with its stat block and, when patch is set,
// the full patch. Output is capped at maxShowChars on top of the runner's
// global ceiling.
func ShowCommit(ctx context.Context, r *gitrun.Runner, commit string, patch bool) (ShowResult, error) {
	if strings.TrimSpace(commit) == "" {
		return ShowResult{}, fmt.Errorf("commit is required")
	}
	args := []string{"show", "--stat"}
	if patch {
		args = append(args, "--patch")
	}
	args = append(args, commit)

	res, err := r.ReadOnly(ctx, args...)
	if err != nil {
		return ShowResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "show"); err != nil {
		return ShowResult{}, err
	}

	text := res.Stdout
	truncated := false
	if len(text) > maxShowChars {
		text = text[:maxShowChars]
		truncated = true
	}
	return ShowResult{Text: text, Truncated: truncated, Git: res}, nil
}

// GrepOptions tune the tracked-content search.
type GrepOptions struct {
	Pathspec   string
	IgnoreCase bool
	MaxHits    int
}

// GrepResult is the capped list of matching lines.
type GrepResult struct {
	Hits  []string      `json:"hits"`
	Count int           `json:"count"`
	Git   gitrun.Result `json:"git"`
}

// Grep searches tracked content with git grep. A pattern with no matches
// is an empty result, not an error.
func Grep(ctx context.Context, r *gitrun.Runner, pattern string, opts GrepOptions) (GrepResult, error) {
	if pattern == "" {
		return GrepResult{}, fmt.Errorf("pattern is required")
	}
	args := []string{"grep", "-n", "--no-color"}
	if opts.IgnoreCase {
		args = append(args, "-i")
	}
	args = append(args, "-e", pattern)
	if opts.Pathspec != "" {
		args = append(args, "--", opts.Pathspec)
	}

	res, err := r.ReadOnly(ctx, args...)
	if err != nil {
		return GrepResult{}, err
	}

	maxHits := opts.MaxHits
	if maxHits < 1 {
		maxHits = maxGrepHits
	}
	hits := splitNonEmptyLines(res.Stdout)
	if len(hits) > maxHits {
		hits = hits[:maxHits]
	}
	return GrepResult{Hits: hits, Count: len(hits), Git: res}, nil
}

// BlameResult is raw line-porcelain blame output for deterministic parsing
// by the caller.
type BlameResult struct {
	Porcelain string        `json:"porcelain"`
	Git       gitrun.Result `json:"git"`
}

// Blame annotates a line range of one file. Lines are clamped to a sane
// ascending range starting at 1.
func Blame(ctx context.Context, r *gitrun.Runner, path string, startLine, endLine int) (BlameResult, error) {
	rel := gitrun.NormalizeRelPath(path)
	if rel == "" {
		return BlameResult{}, fmt.Errorf("path is required")
	}
	if _, err := gitrun.EnsureWithinRoot(r.Root(), rel); err != nil {
		return BlameResult{}, err
	}
	if startLine < 1 {
		startLine = 1
	}
	if endLine < startLine {
		endLine = startLine
	}

	res, err := r.ReadOnly(ctx,
		"blame", "--line-porcelain",
		fmt.Sprintf("-L%d,%d", startLine, endLine), "--", rel)
	if err != nil {
		return BlameResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "blame"); err != nil {
		return BlameResult{}, err
	}
	return BlameResult{Porcelain: res.Stdout, Git: res}, nil
}

// TreeEntry is one path in a repository tree listing.
type TreeEntry struct {
	Path string `json:"path"`
}

// TreeResult is a capped listing of all paths under a ref.
type TreeResult struct {
	Ref       string        `json:"ref"`
	Total     int           `json:"total"`
	Returned  int           `json:"returned"`
	Truncated bool          `json:"truncated"`
	Items     []TreeEntry   `json:"items"`
	Git       gitrun.Result `json:"git"`
}

// Tree lists every blob and tree path at ref via ls-tree.
func Tree(ctx context.Context, r *gitrun.Runner, ref string) (TreeResult, error) {
	if ref == "" {
		ref = "HEAD"
	}
	res, err := r.ReadOnly(ctx, "ls-tree", "-r", "-t", "--name-only", ref)
	if err != nil {
		return TreeResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "tree"); err != nil {
		return TreeResult{}, err
	}

	paths := splitNonEmptyLines(res.Stdout)
	total := len(paths)
	truncated := false
	if total > maxTreeEntries {
		paths = paths[:maxTreeEntries]
		truncated = true
	}
	items := make([]TreeEntry, len(paths))
	for i, p := range paths {
		items[i] = TreeEntry{Path: p}
	}
	return TreeResult{
		Ref: ref, Total: total, Returned: len(items),
		Truncated: truncated, Items: items, Git: res,
	}, nil
}

// FileAtRefResult is (possibly line-capped) file content at a ref.
type FileAtRefResult struct {
	Ref       string        `json:"ref"`
	Path      string        `json:"path"`
	LineCount int           `json:"line_count"`
	Truncated bool          `json:"truncated"`
	Content   string        `json:"content"`
	Git       gitrun.Result `json:"git"`
}

// FileAtRef reads a file's content at ref without touching the working
// tree. The path is confined to the repository root.
func FileAtRef(ctx context.Context, r *gitrun.Runner, ref, path string) (FileAtRefResult, error) {
	if ref == "" {
		ref = "HEAD"
	}
	rel := gitrun.NormalizeRelPath(path)
	if rel == "" {
		return FileAtRefResult{}, fmt.Errorf("path is required")
	}
	if _, err := gitrun.EnsureWithinRoot(r.Root(), rel); err != nil {
		return FileAtRefResult{}, err
	}

	res, err := r.ReadOnly(ctx, "show", ref+":"+rel)
	if err != nil {
		return FileAtRefResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "file_at_ref"); err != nil {
		return FileAtRefResult{}, err
	}

	lineCount := len(splitLines(res.Stdout))
	content, truncated := capLines(res.Stdout, maxTextLines)
	return FileAtRefResult{
		Ref: ref, Path: rel, LineCount: lineCount,
		Truncated: truncated, Content: content, Git: res,
	}, nil
}

// ConflictsResult lists unmerged paths.
type ConflictsResult struct {
	Conflicts []string      `json:"conflicts"`
	Count     int           `json:"count"`
	Git       gitrun.Result `json:"git"`
}

// DetectConflicts reports paths currently in a merge-conflicted state.
func DetectConflicts(ctx context.Context, r *gitrun.Runner) (ConflictsResult, error) {
	res, err := r.ReadOnly(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return ConflictsResult{}, err
	}
	if res, err = gitrun.RequireOk(res, "detect_conflicts"); err != nil {
		return ConflictsResult{}, err
	}
	conflicts := ParseUnmergedPaths(res.Stdout)
	return ConflictsResult{Conflicts: conflicts, Count: len(conflicts), Git: res}, nil
}

func capLines(s string, max int) (string, bool) {
	lines := splitLines(s)
	if len(lines) <= max {
		return s, false
	}
	return strings.Join(lines[:max], "\n"), true
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, line := range splitLines(s) {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
