package mapping

import (
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		AuditID:      d.AuditID,
		UserID:       d.UserID,
		Action:       d.Action,
		ResourceType: d.ResourceType,
		ResourceID:   d.ResourceID,
		OldValues:    d.OldValues,
		NewValues:    d.NewValues,
		Success:      d.Success,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:      m.AuditID,
		UserID:       m.UserID,
		Action:       m.Action,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		OldValues:    m.OldValues,
		NewValues:    m.NewValues,
		Success:      m.Success,
		ErrorMessage: m.ErrorMessage,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainAuditEntrySlice converts model audit entries to domain
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}
