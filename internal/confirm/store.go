package confirm

import "errors"

// ErrNotFound is returned by Get for an unknown confirmation id.
var ErrNotFound = errors.New("confirmation not found")

// Store is the durable home of confirmations. The approval flow never
// mutates a Confirmation directly; all mutation goes through the store so
// the persisted ledger stays authoritative.
type Store interface {
	// Put persists a new confirmation and audits a "proposed" event carrying
	// its classification.
	Put(c *Confirmation) error

	// Get returns the confirmation for id, or ErrNotFound.
	Get(id string) (*Confirmation, error)

	// MarkUsed increments the persisted use count and audits an "executed"
	// event carrying the run result.
	MarkUsed(c *Confirmation, result any) error
}
