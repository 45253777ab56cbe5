package inspect

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adina8244/grounded-git-mcp/internal/gitrun"
)

// initTestRepo creates a temp git repository with a committed file.
// Skips the test if git is not installed.
func initTestRepo(t *testing.T) (string, *gitrun.Runner) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	mustGit(t, dir, "init", "-q", "-b", "main")
	mustGit(t, dir, "config", "user.email", "test@example.com")
	mustGit(t, dir, "config", "user.name", "Test")
	writeFile(t, dir, "hello.txt", "hello world\nsecond line\n")
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-q", "-m", "add hello")

	r, err := gitrun.New(dir, gitrun.DefaultConfig())
	if err != nil {
		t.Fatalf("gitrun.New: %v", err)
	}
	return dir, r
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRepoInfo(t *testing.T) {
	_, r := initTestRepo(t)

	info, err := RepoInfo(context.Background(), r)
	if err != nil {
		t.Fatalf("RepoInfo: %v", err)
	}
	if !info.IsGit {
		t.Fatal("IsGit = false for a git repo")
	}
	if info.Branch != "main" {
		t.Errorf("Branch = %q, want main", info.Branch)
	}
	if len(info.Head) != 40 {
		t.Errorf("Head = %q, want full sha", info.Head)
	}
	if info.Upstream != "" {
		t.Errorf("Upstream = %q, want empty without a remote", info.Upstream)
	}
}

func TestRepoInfoNonRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	r, err := gitrun.New(t.TempDir(), gitrun.DefaultConfig())
	if err != nil {
		t.Fatalf("gitrun.New: %v", err)
	}

	info, err := RepoInfo(context.Background(), r)
	if err != nil {
		t.Fatalf("RepoInfo: %v", err)
	}
	if info.IsGit {
		t.Error("IsGit = true outside a repository")
	}
}

func TestStatusDirtyRepo(t *testing.T) {
	dir, r := initTestRepo(t)
	writeFile(t, dir, "hello.txt", "changed\n")
	writeFile(t, dir, "new.txt", "untracked\n")

	got, err := Status(context.Background(), r, 200)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got.Count != 2 {
		t.Fatalf("Count = %d, want 2 (entries %+v)", got.Count, got.Entries)
	}
	byPath := map[string]string{}
	for _, e := range got.Entries {
		byPath[e.Path] = e.XY
	}
	if byPath["hello.txt"] != " M" {
		t.Errorf("hello.txt xy = %q, want \" M\"", byPath["hello.txt"])
	}
	if byPath["new.txt"] != "??" {
		t.Errorf("new.txt xy = %q, want \"??\"", byPath["new.txt"])
	}
}

func TestStatusCapsEntries(t *testing.T) {
	dir, r := initTestRepo(t)
	writeFile(t, dir, "a.txt", "x")
	writeFile(t, dir, "b.txt", "x")
	writeFile(t, dir, "c.txt", "x")

	got, err := Status(context.Background(), r, 2)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got.Count != 2 {
		t.Errorf("Count = %d, want capped 2", got.Count)
	}
}

func TestDiffSummary(t *testing.T) {
	dir, r := initTestRepo(t)
	writeFile(t, dir, "hello.txt", "changed content\n")
	mustGit(t, dir, "add", "hello.txt")

	got, err := DiffSummary(context.Background(), r, DiffSummaryOptions{Staged: true})
	if err != nil {
		t.Fatalf("DiffSummary: %v", err)
	}
	if got.Summary.Total != 1 {
		t.Fatalf("Total = %d, want 1", got.Summary.Total)
	}
	if got.Summary.Counts["M"] != 1 {
		t.Errorf("Counts = %v, want M:1", got.Summary.Counts)
	}
	if got.Summary.Files[0].Path != "hello.txt" {
		t.Errorf("Files[0].Path = %q", got.Summary.Files[0].Path)
	}
}

func TestDiffRange(t *testing.T) {
	dir, r := initTestRepo(t)
	writeFile(t, dir, "hello.txt", "v2\n")
	mustGit(t, dir, "commit", "-aqm", "second")

	got, err := DiffRange(context.Background(), r, DiffRangeOptions{})
	if err != nil {
		t.Fatalf("DiffRange: %v", err)
	}
	if got.Range != "HEAD~1..HEAD" {
		t.Errorf("Range = %q, want HEAD~1..HEAD", got.Range)
	}
	if !strings.Contains(got.Diff, "hello.txt") {
		t.Errorf("diff does not mention changed file:\n%s", got.Diff)
	}
}

func TestLog(t *testing.T) {
	_, r := initTestRepo(t)

	got, err := Log(context.Background(), r, 10, "", "")
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(got.Lines))
	}
	if !strings.Contains(got.Lines[0], "add hello") {
		t.Errorf("log line = %q, want commit subject", got.Lines[0])
	}
}

func TestShowCommit(t *testing.T) {
	_, r := initTestRepo(t)

	got, err := ShowCommit(context.Background(), r, "HEAD", true)
	if err != nil {
		t.Fatalf("ShowCommit: %v", err)
	}
	if !strings.Contains(got.Text, "add hello") || !strings.Contains(got.Text, "hello.txt") {
		t.Errorf("show output missing subject or file:\n%s", got.Text)
	}

	if _, err := ShowCommit(context.Background(), r, "", true); err == nil {
		t.Error("ShowCommit with empty commit should fail")
	}
}

func TestGrep(t *testing.T) {
	_, r := initTestRepo(t)

	got, err := Grep(context.Background(), r, "hello", GrepOptions{})
	if err != nil {
		t.Fatalf("Grep: %v", err)
	}
	if got.Count != 1 {
		t.Fatalf("Count = %d, want 1 (hits %v)", got.Count, got.Hits)
	}
	if !strings.HasPrefix(got.Hits[0], "hello.txt:1:") {
		t.Errorf("hit = %q, want hello.txt:1: prefix", got.Hits[0])
	}

	// No match exits 1, which is a normal empty result.
	none, err := Grep(context.Background(), r, "zzz-no-such-token", GrepOptions{})
	if err != nil {
		t.Fatalf("Grep(no match): %v", err)
	}
	if none.Count != 0 {
		t.Errorf("Count = %d, want 0", none.Count)
	}
}

func TestBlame(t *testing.T) {
	_, r := initTestRepo(t)

	got, err := Blame(context.Background(), r, "hello.txt", 1, 2)
	if err != nil {
		t.Fatalf("Blame: %v", err)
	}
	if !strings.Contains(got.Porcelain, "hello world") {
		t.Errorf("blame porcelain missing line content:\n%s", got.Porcelain)
	}

	if _, err := Blame(context.Background(), r, "../outside", 1, 1); err == nil {
		t.Error("Blame outside the root should fail")
	}
}

func TestTree(t *testing.T) {
	dir, r := initTestRepo(t)
	writeFile(t, dir, "sub/nested.txt", "x\n")
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-qm", "nest")

	got, err := Tree(context.Background(), r, "HEAD")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	paths := map[string]bool{}
	for _, it := range got.Items {
		paths[it.Path] = true
	}
	for _, want := range []string{"hello.txt", "sub", "sub/nested.txt"} {
		if !paths[want] {
			t.Errorf("tree missing %q (items %v)", want, got.Items)
		}
	}
	if got.Truncated {
		t.Error("tiny tree reported truncated")
	}
}

func TestFileAtRef(t *testing.T) {
	dir, r := initTestRepo(t)
	writeFile(t, dir, "hello.txt", "working tree only\n")

	got, err := FileAtRef(context.Background(), r, "HEAD", "hello.txt")
	if err != nil {
		t.Fatalf("FileAtRef: %v", err)
	}
	if !strings.Contains(got.Content, "hello world") {
		t.Errorf("content = %q, want committed version", got.Content)
	}
	if got.LineCount < 2 {
		t.Errorf("LineCount = %d, want >= 2", got.LineCount)
	}

	if _, err := FileAtRef(context.Background(), r, "HEAD", "../escape"); err == nil {
		t.Error("FileAtRef outside the root should fail")
	}
	if _, err := FileAtRef(context.Background(), r, "HEAD", ""); err == nil {
		t.Error("FileAtRef with empty path should fail")
	}
}

func TestDetectConflicts(t *testing.T) {
	dir, r := initTestRepo(t)

	got, err := DetectConflicts(context.Background(), r)
	if err != nil {
		t.Fatalf("DetectConflicts: %v", err)
	}
	if got.Count != 0 {
		t.Errorf("Count = %d, want 0 on clean repo", got.Count)
	}

	// Manufacture a real conflict with two divergent branches.
	mustGit(t, dir, "checkout", "-qb", "side")
	writeFile(t, dir, "hello.txt", "side version\n")
	mustGit(t, dir, "commit", "-aqm", "side edit")
	mustGit(t, dir, "checkout", "-q", "main")
	writeFile(t, dir, "hello.txt", "main version\n")
	mustGit(t, dir, "commit", "-aqm", "main edit")
	merge := exec.Command("git", "merge", "side")
	merge.Dir = dir
	_ = merge.Run() // expected to fail with a conflict

	got, err = DetectConflicts(context.Background(), r)
	if err != nil {
		t.Fatalf("DetectConflicts after merge: %v", err)
	}
	if got.Count != 1 || got.Conflicts[0] != "hello.txt" {
		t.Errorf("Conflicts = %v, want [hello.txt]", got.Conflicts)
	}
}
