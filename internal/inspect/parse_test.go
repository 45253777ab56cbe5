package inspect

import (
	"reflect"
	"testing"
)

func TestParseStatusPorcelain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []StatusEntry
	}{
		{
			name: "empty output",
			in:   "",
			want: nil,
		},
		{
			name: "modified and untracked",
			in:   " M a.txt\n?? b.txt\n",
			want: []StatusEntry{
				{XY: " M", Path: "a.txt"},
				{XY: "??", Path: "b.txt"},
			},
		},
		{
			name: "rename keeps both paths",
			in:   "R  old.txt -> new.txt\n",
			want: []StatusEntry{
				{XY: "R ", Path: "new.txt", OrigPath: "old.txt"},
			},
		},
		{
			name: "staged and unstaged on one path",
			in:   "MM pkg/run.go\n",
			want: []StatusEntry{
				{XY: "MM", Path: "pkg/run.go"},
			},
		},
		{
			name: "blank lines skipped",
			in:   "\n M a.txt\n\n",
			want: []StatusEntry{
				{XY: " M", Path: "a.txt"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStatusPorcelain(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseStatusPorcelain() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseNameStatus(t *testing.T) {
	in := "M\ta.txt\nA\tb.txt\nD\tc.txt\nR100\told.txt\tnew.txt\n"
	got := ParseNameStatus(in)

	if got.Total != 4 {
		t.Errorf("Total = %d, want 4", got.Total)
	}
	wantCounts := map[string]int{"M": 1, "A": 1, "D": 1, "R": 1}
	if !reflect.DeepEqual(got.Counts, wantCounts) {
		t.Errorf("Counts = %v, want %v", got.Counts, wantCounts)
	}
	if len(got.Files) != 4 {
		t.Fatalf("got %d files, want 4", len(got.Files))
	}
	if got.Files[0] != (ChangedFile{Status: "M", Path: "a.txt"}) {
		t.Errorf("Files[0] = %+v", got.Files[0])
	}
	rename := got.Files[3]
	if rename.Status != "R100" || rename.From != "old.txt" || rename.To != "new.txt" {
		t.Errorf("rename entry = %+v", rename)
	}
	if rename.Path != "" {
		t.Errorf("rename entry has Path %q, want empty", rename.Path)
	}
}

func TestParseNameStatusEmpty(t *testing.T) {
	got := ParseNameStatus("\n\n")
	if got.Total != 0 || len(got.Files) != 0 {
		t.Errorf("ParseNameStatus(blank) = %+v, want empty summary", got)
	}
}

func TestParseUnmergedPaths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"no conflicts", "", nil},
		{"two conflicts", "a.txt\ndir/b.txt\n", []string{"a.txt", "dir/b.txt"}},
		{"whitespace trimmed", "  a.txt  \n\n", []string{"a.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseUnmergedPaths(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseUnmergedPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapLines(t *testing.T) {
	text := "1\n2\n3\n4"
	got, truncated := capLines(text, 2)
	if !truncated || got != "1\n2" {
		t.Errorf("capLines() = %q, %v; want %q, true", got, truncated, "1\n2")
	}
	got, truncated = capLines(text, 10)
	if truncated || got != text {
		t.Errorf("capLines() under limit = %q, %v; want original, false", got, truncated)
	}
}
