package main

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// initTestRepo creates a temp git repository with one committed file.
// Skips the test if git is not installed.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "-q", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test User")
	if err := os.WriteFile(filepath.Join(dir, "test.txt"), []byte("test content\n"), 0o600); err != nil {
		t.Fatalf("writing test file: %v", err)
	}
	runGit(t, dir, "add", "test.txt")
	runGit(t, dir, "commit", "-q", "-m", "Initial commit")
	return dir
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// runCommand executes the CLI against a repo and returns combined output.
func runCommand(t *testing.T, repo string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--root", repo}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestInfoCommand_JSON(t *testing.T) {
	repo := initTestRepo(t)

	out, err := runCommand(t, repo, "info", "--json")
	if err != nil {
		t.Fatalf("info: %v\n%s", err, out)
	}

	var result struct {
		IsGit  bool   `json:"is_git"`
		Branch string `json:"branch"`
		Head   string `json:"head"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parsing JSON output: %v\n%s", err, out)
	}
	if !result.IsGit || result.Branch != "main" || len(result.Head) != 40 {
		t.Errorf("info = %+v", result)
	}
}

func TestStatusCommand(t *testing.T) {
	repo := initTestRepo(t)
	if err := os.WriteFile(filepath.Join(repo, "new.txt"), []byte("x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, repo, "status", "--json")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}

	var result struct {
		Count   int `json:"count"`
		Entries []struct {
			XY   string `json:"xy"`
			Path string `json:"path"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("parsing JSON output: %v\n%s", err, out)
	}
	if result.Count != 1 || result.Entries[0].Path != "new.txt" || result.Entries[0].XY != "??" {
		t.Errorf("status = %+v", result)
	}
}

func TestLogCommand(t *testing.T) {
	repo := initTestRepo(t)

	out, err := runCommand(t, repo, "log")
	if err != nil {
		t.Fatalf("log: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Initial commit") {
		t.Errorf("log output missing commit subject:\n%s", out)
	}
}

func TestGrepCommand(t *testing.T) {
	repo := initTestRepo(t)

	out, err := runCommand(t, repo, "grep", "test content")
	if err != nil {
		t.Fatalf("grep: %v\n%s", err, out)
	}
	if !strings.Contains(out, "test.txt:1:") {
		t.Errorf("grep output missing hit:\n%s", out)
	}
}

func TestCatFileCommand_RejectsEscape(t *testing.T) {
	repo := initTestRepo(t)

	if _, err := runCommand(t, repo, "cat-file", "../outside"); err == nil {
		t.Error("cat-file escaped the repository root")
	}
}

func TestProposeExecuteAuditRoundTrip(t *testing.T) {
	repo := initTestRepo(t)

	out, err := runCommand(t, repo, "propose", "--json", "--", "commit", "--allow-empty", "-m", "via cli")
	if err != nil {
		t.Fatalf("propose: %v\n%s", err, out)
	}

	var proposal struct {
		ConfirmationID  string `json:"confirmation_id"`
		PromptToConfirm string `json:"prompt_to_confirm"`
	}
	if err := json.Unmarshal([]byte(out), &proposal); err != nil {
		t.Fatalf("parsing proposal: %v\n%s", err, out)
	}
	if proposal.ConfirmationID == "" {
		t.Fatal("no confirmation id in proposal output")
	}

	// Wrong phrase exits non-zero and runs nothing.
	if _, err := runCommand(t, repo, "execute", proposal.ConfirmationID, "--confirm", "nope"); err == nil {
		t.Fatal("execute accepted a wrong phrase")
	}

	out, err = runCommand(t, repo, "execute", proposal.ConfirmationID, "--confirm", proposal.PromptToConfirm)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}

	out, err = runCommand(t, repo, "audit")
	if err != nil {
		t.Fatalf("audit: %v\n%s", err, out)
	}
	if !strings.Contains(out, "proposed") || !strings.Contains(out, "executed") {
		t.Errorf("audit output missing actions:\n%s", out)
	}
}

func TestProposeRejectsForcePush(t *testing.T) {
	repo := initTestRepo(t)

	out, err := runCommand(t, repo, "propose", "--", "push", "--force", "origin", "main")
	if err == nil {
		t.Fatalf("propose accepted a force push:\n%s", out)
	}
}

func TestInvalidRootIsUserError(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	_, err := runCommand(t, "/does/not/exist", "info")
	if err == nil {
		t.Fatal("info accepted a missing root")
	}
}
