package domain

import "time"

// AuditEntry is one row of the generic append-only audit trail. Emission is
// fire-and-forget: a failed append never fails the operation that produced
// it. Failure entries carry Success=false and the error message, never the
// full payload of the failed operation.
type AuditEntry struct {
	AuditID      string    `json:"auditID"`
	UserID       string    `json:"userID"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceID"`
	OldValues    string    `json:"oldValues,omitempty"` // JSON snapshot
	NewValues    string    `json:"newValues,omitempty"` // JSON snapshot
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
