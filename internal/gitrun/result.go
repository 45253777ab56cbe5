package gitrun

import "unicode/utf8"

// Result is the standardized outcome of a single git invocation.
// It is produced once per run and never mutated afterward.
type Result struct {
	Argv            []string `json:"argv"`
	Root            string   `json:"root"`
	Stdout          string   `json:"stdout"`
	Stderr          string   `json:"stderr"`
	ExitCode        int      `json:"exit_code"`
	DurationMS      int64    `json:"duration_ms"`
	TimedOut        bool     `json:"timed_out"`
	OutputTruncated bool     `json:"output_truncated"`
}

// applyOutputCeiling enforces the combined stdout+stderr cap. Stderr is
// prioritized (diagnostic signal) with up to half the budget; stdout gets
// the remainder. Deterministic for identical inputs and budget.
func applyOutputCeiling(stdout, stderr string, maxChars int) (string, string, bool) {
	if maxChars < 1 {
		maxChars = 1
	}
	if len(stdout)+len(stderr) <= maxChars {
		return stdout, stderr, false
	}

	keepStderr := len(stderr)
	if half := maxChars / 2; keepStderr > half {
		keepStderr = half
	}
	keepStdout := maxChars - keepStderr

	return cutOnRuneBoundary(stdout, keepStdout), cutOnRuneBoundary(stderr, keepStderr), true
}

// cutOnRuneBoundary cuts s to at most n bytes, backing up so the cut never
// splits a multi-byte rune.
func cutOnRuneBoundary(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
