package models

import "time"

// AuditEntry is the audit_logs table row. Append-only, never updated.
type AuditEntry struct {
	AuditID      string    `db:"audit_id"`
	UserID       string    `db:"user_id"`
	Action       string    `db:"action"`
	ResourceType string    `db:"resource_type"`
	ResourceID   string    `db:"resource_id"`
	OldValues    string    `db:"old_values"`
	NewValues    string    `db:"new_values"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	CreatedAt    time.Time `db:"created_at"`
}
