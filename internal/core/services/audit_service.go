package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
)

const auditWriteTimeout = 5 * time.Second

// auditService is the fire-and-forget audit sink: entries go through a
// buffered channel to a single background writer. A full buffer or a failed
// append is logged and dropped; it never propagates to the operation that
// produced the entry.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepository
	logger    *slog.Logger
	entries   chan domain.AuditEntry
	done      chan struct{}
	closeOnce sync.Once
}

// NewAuditService creates the audit dispatcher and starts its writer.
func NewAuditService(base BaseService, auditRepo portsrepo.AuditRepository, logger *slog.Logger, bufferSize int) portssvc.AuditSvcFacade {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	s := &auditService{
		BaseService: base,
		auditRepo:   auditRepo,
		logger:      logger.With(slog.String("component", "audit")),
		entries:     make(chan domain.AuditEntry, bufferSize),
		done:        make(chan struct{}),
	}
	go s.run()
	return s
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) run() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		err := s.auditRepo.AppendAuditEntry(ctx, entry)
		cancel()
		if err != nil {
			s.logger.Error("Failed to append audit entry",
				slog.String("action", entry.Action),
				slog.String("resource_id", entry.ResourceID),
				slog.String("error", err.Error()))
		}
	}
}

// Publish enqueues an entry without blocking. Entries are dropped (and the
// drop logged) if the buffer is full; audit emission must never slow or
// fail the primary operation.
func (s *auditService) Publish(entry domain.AuditEntry) {
	if entry.AuditID == "" {
		entry.AuditID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Audit buffer full, dropping entry",
			slog.String("action", entry.Action),
			slog.String("resource_id", entry.ResourceID))
	}
}

// ListAuditEntries pages the trail for the admin console.
func (s *auditService) ListAuditEntries(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceAuditLogs, domain.ActionView); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListAuditEntries(ctx, limit, offset)
}

// Close stops accepting entries and waits for the writer to drain.
func (s *auditService) Close() {
	s.closeOnce.Do(func() {
		close(s.entries)
		<-s.done
	})
}
