package repositories

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// AuditRepository is the append-only audit trail store.
type AuditRepository interface {
	// AppendAuditEntry appends one audit row. Callers treat failures as
	// non-fatal; the dispatcher logs and drops them.
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error

	// ListAuditEntries pages the trail, newest first.
	ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error)
}
