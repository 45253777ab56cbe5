package gitrun

import (
	"fmt"
	"strings"
)

// defaultReadOnlyAllowlist is the fixed set of verbs permitted in read-only
// mode. Everything else is blocked before any process is spawned.
var defaultReadOnlyAllowlist = []string{
	"rev-parse",
	"status",
	"log",
	"diff",
	"show",
	"branch",
	"remote",
	"config",
	"ls-files",
	"cat-file",
	"describe",
	"tag",
	"grep",
	"blame",
	"ls-tree",
	"merge-base",
}

// dangerousFlags mutate state even under allowlisted verbs.
// Matched case-insensitively across the whole argument list.
var dangerousFlags = map[string]bool{
	"--global":      true,
	"--system":      true,
	"--unset":       true,
	"--unset-all":   true,
	"--add":         true,
	"--replace-all": true,
	"--delete":      true,
	"--force":       true,
	"-f":            true,
}

// validateArgs is the policy gate. It runs before any spawn and returns a
// *PolicyError for anything the current mode does not permit.
func (r *Runner) validateArgs(args []string, readOnly bool) error {
	if len(args) == 0 {
		return &PolicyError{Reason: "empty git args are not allowed"}
	}
	if !readOnly {
		return nil
	}

	lowered := make([]string, len(args))
	for i, a := range args {
		lowered[i] = strings.ToLower(strings.TrimSpace(a))
	}
	verb := lowered[0]

	if !r.allowlisted(verb) {
		return &PolicyError{Reason: fmt.Sprintf(
			"blocked git subcommand in read-only mode: %q (allowed: %s)",
			verb, strings.Join(r.cfg.ReadOnlyAllowlist, ", "))}
	}

	for _, a := range lowered {
		if dangerousFlags[a] {
			return &PolicyError{Reason: fmt.Sprintf(
				"blocked potentially mutating git flag %q in read-only mode", a)}
		}
	}

	return verbPolicy(verb, lowered)
}

// verbPolicy applies per-verb sub-policies under read-only mode.
func verbPolicy(verb string, lowered []string) error {
	switch verb {
	case "branch":
		for _, a := range lowered[1:] {
			if a == "-d" || a == "--delete" {
				return &PolicyError{Reason: "blocked branch deletion in read-only mode"}
			}
		}
	case "tag":
		for _, a := range lowered[1:] {
			if a == "-d" || a == "--delete" {
				return &PolicyError{Reason: "blocked tag deletion in read-only mode"}
			}
		}
	case "remote":
		if len(lowered) >= 2 {
			switch lowered[1] {
			case "set-url", "add", "remove", "rename":
				return &PolicyError{Reason: "blocked remote mutation in read-only mode"}
			}
		}
	case "config":
		// Two or more trailing arguments means a key plus a value: a write.
		// Coarse on purpose; see DESIGN.md for the precision tradeoff.
		if len(lowered) >= 3 {
			return &PolicyError{Reason: "blocked config write in read-only mode"}
		}
	}
	return nil
}

func (r *Runner) allowlisted(verb string) bool {
	for _, allowed := range r.cfg.ReadOnlyAllowlist {
		if verb == allowed {
			return true
		}
	}
	return false
}
