// Package confirm persists one-time approval tokens and the audit trail.
//
// A Confirmation is created by the approval flow's propose step, consumed by
// exactly one successful execute, and expires on wall-clock time regardless
// of use. All state lives in a per-repository dot-directory: a JSON ledger
// keyed by confirmation id plus an append-only NDJSON audit log.
package confirm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/adina8244/grounded-git-mcp/internal/risk"
)

// idLength is the truncated hex length of confirmation ids. Collisions are
// tolerated over strict uniqueness; tokens live for minutes, not years.
const idLength = 16

// Preconditions are repository-state assertions captured at proposal time
// and re-verified immediately before execution.
type Preconditions struct {
	ExpectedHead       string `json:"expected_head,omitempty"`
	ExpectedBranch     string `json:"expected_branch,omitempty"`
	RequireClean       bool   `json:"require_clean"`
	RequireNoConflicts bool   `json:"require_no_conflicts"`
}

// Confirmation is a pending or consumed approval token for one exact
// command in one repository root.
type Confirmation struct {
	ID             string              `json:"id"`
	Root           string              `json:"root"`
	Args           []string            `json:"args"`
	Classification risk.Classification `json:"classification"`
	CmdHash        string              `json:"cmd_hash"`
	CreatedAt      int64               `json:"created_at"`
	ExpiresAt      int64               `json:"expires_at"`
	MaxUses        int                 `json:"max_uses"`
	Used           int                 `json:"used"`
	Preconditions  Preconditions       `json:"preconditions"`
}

// IsExpired reports whether wall-clock time has passed ExpiresAt.
func (c *Confirmation) IsExpired(now time.Time) bool {
	return now.Unix() > c.ExpiresAt
}

// CanUse reports whether the token is still consumable:
// not expired and used fewer than MaxUses times.
func (c *Confirmation) CanUse(now time.Time) bool {
	return !c.IsExpired(now) && c.Used < c.MaxUses
}

// Phrase returns the exact confirmation phrase a human must relay back to
// authorize execution.
func (c *Confirmation) Phrase() string {
	return "I CONFIRM " + c.ID
}

// NewID derives a short token from the root, the current time, and the
// newline-joined args.
func NewID(root string, args []string, now time.Time) string {
	seed := fmt.Sprintf("%s\n%d\n%s", root, now.Unix(), stableCmdText(args))
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:idLength]
}

// CommandHash is the full content hash of the newline-joined argument list.
// Stored at proposal time and re-verified at execution time to detect args
// substituted under the same id.
func CommandHash(args []string) string {
	sum := sha256.Sum256([]byte(stableCmdText(args)))
	return hex.EncodeToString(sum[:])
}

func stableCmdText(args []string) string {
	return strings.Join(args, "\n")
}
