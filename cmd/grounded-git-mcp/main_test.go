package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_Version(t *testing.T) {
	version = "1.2.3"

	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "1.2.3") {
		t.Errorf("--version output should contain version: %q", out)
	}
	if !strings.Contains(out, "grounded-git-mcp") {
		t.Errorf("--version output should contain the binary name: %q", out)
	}
}

func TestRootCommand_Help(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	out := buf.String()
	for _, expected := range []string{
		"grounded-git-mcp",
		"Usage:",
		"--json",
		"Inspection Commands:",
		"Approval Commands:",
		"propose",
		"execute",
		"serve",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("--help output should contain %q", expected)
		}
	}
}

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{"dev defaults", "dev", "none", "unknown", "dev"},
		{"full build info", "1.0.0", "abc123def456", "2026-01-01", "1.0.0 (abc123d, 2026-01-01)"},
		{"short commit kept", "1.0.0", "abc", "2026-01-01", "1.0.0 (abc, 2026-01-01)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, commit, date = tt.version, tt.commit, tt.date
			if got := buildVersion(); got != tt.want {
				t.Errorf("buildVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
