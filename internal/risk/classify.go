// Package risk classifies git commands by the kind of damage they can do.
//
// Classification is derived purely from the leading verb. It is recomputed
// on every proposal and never cached across repository states.
package risk

import "strings"

// Kind describes what a command touches.
type Kind string

const (
	KindRead        Kind = "read"
	KindWrite       Kind = "write"
	KindNetwork     Kind = "network"
	KindDestructive Kind = "destructive"
)

// Level orders commands by blast radius.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Classification is the verdict for one command. Pure data; no methods
// mutate it.
type Classification struct {
	Kind   Kind   `json:"kind"`
	Risk   Level  `json:"risk"`
	Reason string `json:"reason"`
}

// denySet holds verbs that can never be proposed, let alone auto-approved.
// push/fetch/gc also appear in networkSet; deny checks first and wins.
var denySet = map[string]bool{
	"reset":       true,
	"clean":       true,
	"rebase":      true,
	"commit-tree": true,
	"update-ref":  true,
	"push":        true,
	"fetch":       true,
	"gc":          true,
}

// networkSet holds verbs that talk to remotes.
var networkSet = map[string]bool{
	"push":      true,
	"fetch":     true,
	"pull":      true,
	"clone":     true,
	"ls-remote": true,
	"submodule": true,
}

// writeSet holds verbs that mutate local repository state.
var writeSet = map[string]bool{
	"add":         true,
	"rm":          true,
	"mv":          true,
	"commit":      true,
	"stash":       true,
	"tag":         true,
	"branch":      true,
	"merge":       true,
	"cherry-pick": true,
	"revert":      true,
}

// mediumWriteSet is the writeSet subset considered medium rather than high
// risk: easily reversible staging and ref bookkeeping.
var mediumWriteSet = map[string]bool{
	"add":    true,
	"rm":     true,
	"mv":     true,
	"tag":    true,
	"branch": true,
	"stash":  true,
}

// Classify maps a git argument list (without the leading "git") to a
// Classification. Deterministic, no I/O.
//
// Precedence: deny, then network, then write, then assumed read-only.
func Classify(args []string) Classification {
	if len(args) == 0 {
		return Classification{Kind: KindRead, Risk: LevelLow, Reason: "no args"}
	}

	verb := strings.ToLower(args[0])

	switch {
	case denySet[verb]:
		return Classification{Kind: KindDestructive, Risk: LevelCritical, Reason: "denied subcommand: " + verb}
	case networkSet[verb]:
		return Classification{Kind: KindNetwork, Risk: LevelHigh, Reason: "network subcommand: " + verb}
	case writeSet[verb]:
		level := LevelHigh
		if mediumWriteSet[verb] {
			level = LevelMedium
		}
		return Classification{Kind: KindWrite, Risk: level, Reason: "write subcommand: " + verb}
	default:
		return Classification{Kind: KindRead, Risk: LevelLow, Reason: "assumed read-only: " + verb}
	}
}
