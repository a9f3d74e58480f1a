package mapping

import (
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
)

// ToModelCollectionSheet converts a domain CollectionSheet to its model.
// Entries are mapped separately; they live in their own table.
func ToModelCollectionSheet(d domain.CollectionSheet) models.CollectionSheet {
	return models.CollectionSheet{
		SheetID:         d.SheetID,
		CenterID:        d.CenterID,
		CollectionDate:  d.CollectionDate,
		ExpectedMembers: d.ExpectedMembers,
		PresentMembers:  d.PresentMembers,
		TotalLoan:       d.TotalLoan,
		TotalCBU:        d.TotalCBU,
		TotalInsurance:  d.TotalInsurance,
		TotalCollected:  d.TotalCollected,
		Status:          string(d.Status),
		VerifiedBy:      d.VerifiedBy,
		VerifiedAt:      d.VerifiedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCollectionSheet converts a model CollectionSheet to its domain form
func ToDomainCollectionSheet(m models.CollectionSheet) domain.CollectionSheet {
	return domain.CollectionSheet{
		SheetID:         m.SheetID,
		CenterID:        m.CenterID,
		CollectionDate:  m.CollectionDate,
		ExpectedMembers: m.ExpectedMembers,
		PresentMembers:  m.PresentMembers,
		TotalLoan:       m.TotalLoan,
		TotalCBU:        m.TotalCBU,
		TotalInsurance:  m.TotalInsurance,
		TotalCollected:  m.TotalCollected,
		Status:          domain.CollectionSheetStatus(m.Status),
		VerifiedBy:      m.VerifiedBy,
		VerifiedAt:      m.VerifiedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCollectionSheetSlice converts model sheets to domain
func ToDomainCollectionSheetSlice(ms []models.CollectionSheet) []domain.CollectionSheet {
	ds := make([]domain.CollectionSheet, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCollectionSheet(m)
	}
	return ds
}

// ToModelCollectionEntry converts a domain CollectionEntry to its model
func ToModelCollectionEntry(d domain.CollectionEntry) models.CollectionEntry {
	return models.CollectionEntry{
		EntryID:          d.EntryID,
		SheetID:          d.SheetID,
		MemberID:         d.MemberID,
		LoanID:           d.LoanID,
		IsPresent:        d.IsPresent,
		LoanPayment:      d.LoanPayment,
		CBUPayment:       d.CBUPayment,
		InsurancePayment: d.InsurancePayment,
		Notes:            d.Notes,
	}
}

// ToDomainCollectionEntry converts a model CollectionEntry to its domain form
func ToDomainCollectionEntry(m models.CollectionEntry) domain.CollectionEntry {
	return domain.CollectionEntry{
		EntryID:          m.EntryID,
		SheetID:          m.SheetID,
		MemberID:         m.MemberID,
		LoanID:           m.LoanID,
		IsPresent:        m.IsPresent,
		LoanPayment:      m.LoanPayment,
		CBUPayment:       m.CBUPayment,
		InsurancePayment: m.InsurancePayment,
		Notes:            m.Notes,
	}
}

// ToDomainCollectionEntrySlice converts model entries to domain
func ToDomainCollectionEntrySlice(ms []models.CollectionEntry) []domain.CollectionEntry {
	ds := make([]domain.CollectionEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCollectionEntry(m)
	}
	return ds
}
