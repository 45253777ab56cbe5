package confirm

import "github.com/google/uuid"

// Action enumerates auditable events.
type Action string

const (
	ActionProposed Action = "proposed"
	ActionExecuted Action = "executed"
)

// AuditRecord is one appended line of the audit log. Records are never
// mutated or deleted.
type AuditRecord struct {
	RecordID       string         `json:"record_id"`
	TS             int64          `json:"ts"`
	Action         Action         `json:"action"`
	ConfirmationID string         `json:"confirmation_id"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// newAuditRecord stamps a record with a fresh id.
func newAuditRecord(ts int64, action Action, confirmationID string, extra map[string]any) AuditRecord {
	return AuditRecord{
		RecordID:       uuid.NewString(),
		TS:             ts,
		Action:         action,
		ConfirmationID: confirmationID,
		Extra:          extra,
	}
}
