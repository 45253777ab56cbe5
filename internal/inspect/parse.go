package inspect

import "strings"

// StatusEntry is one line of porcelain v1 status output. OrigPath is set
// only for renames.
type StatusEntry struct {
	XY       string `json:"xy"`
	Path     string `json:"path"`
	OrigPath string `json:"orig_path,omitempty"`
}

// ParseStatusPorcelain parses `git status --porcelain=v1` lines:
//
//	XY <path>
//	XY <orig> -> <path>
func ParseStatusPorcelain(text string) []StatusEntry {
	var out []StatusEntry
	for _, line := range splitLines(text) {
		if line == "" {
			continue
		}
		xy := line
		if len(xy) > 2 {
			xy = line[:2]
		}
		rest := ""
		if len(line) >= 4 {
			rest = line[3:]
		}
		if orig, path, ok := strings.Cut(rest, " -> "); ok {
			out = append(out, StatusEntry{XY: xy, Path: path, OrigPath: orig})
			continue
		}
		out = append(out, StatusEntry{XY: xy, Path: rest})
	}
	return out
}

// ChangedFile is one line of `git diff --name-status` output. From and To
// are set for renames, Path for everything else.
type ChangedFile struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// DiffSummaryResult is a compact view of changed files with per-status
// counts keyed by the first status letter (M, A, D, R, ...).
type DiffSummaryResult struct {
	Counts map[string]int `json:"counts"`
	Files  []ChangedFile  `json:"files"`
	Total  int            `json:"total"`
}

// ParseNameStatus parses `git diff --name-status` lines:
//
//	M\tfile
//	R100\told\tnew
func ParseNameStatus(text string) DiffSummaryResult {
	sum := DiffSummaryResult{Counts: map[string]int{}}
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		code := parts[0]
		sum.Counts[code[:1]]++
		sum.Total++
		if strings.HasPrefix(code, "R") && len(parts) >= 3 {
			sum.Files = append(sum.Files, ChangedFile{Status: code, From: parts[1], To: parts[2]})
			continue
		}
		path := ""
		if len(parts) > 1 {
			path = parts[1]
		}
		sum.Files = append(sum.Files, ChangedFile{Status: code, Path: path})
	}
	return sum
}

// ParseUnmergedPaths parses `git diff --name-only --diff-filter=U` output
// into the list of conflicted paths.
func ParseUnmergedPaths(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		p := strings.TrimSpace(line)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
