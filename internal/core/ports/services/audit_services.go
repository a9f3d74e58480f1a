package services

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// AuditPublisher is the fire-and-forget audit sink. Publish never blocks the
// caller and never returns an error; append failures are logged internally
// and dropped.
type AuditPublisher interface {
	Publish(entry domain.AuditEntry)
}

// AuditSvcFacade adds the admin-console read side and lifecycle control to
// the publisher.
type AuditSvcFacade interface {
	AuditPublisher

	// ListAuditEntries pages the audit trail, newest first.
	ListAuditEntries(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, error)

	// Close drains pending entries. Called once on shutdown.
	Close()
}
