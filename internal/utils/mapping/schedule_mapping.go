package mapping

import (
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
)

// ToModelScheduleEntry converts a domain RepaymentScheduleEntry to its model
func ToModelScheduleEntry(d domain.RepaymentScheduleEntry) models.RepaymentScheduleEntry {
	return models.RepaymentScheduleEntry{
		EntryID:      d.EntryID,
		LoanID:       d.LoanID,
		WeekNumber:   d.WeekNumber,
		DueDate:      d.DueDate,
		PrincipalDue: d.PrincipalDue,
		InterestDue:  d.InterestDue,
		TotalDue:     d.TotalDue,
		Status:       string(d.Status),
		PaidAt:       d.PaidAt,
	}
}

// ToDomainScheduleEntry converts a model RepaymentScheduleEntry to its domain form
func ToDomainScheduleEntry(m models.RepaymentScheduleEntry) domain.RepaymentScheduleEntry {
	return domain.RepaymentScheduleEntry{
		EntryID:      m.EntryID,
		LoanID:       m.LoanID,
		WeekNumber:   m.WeekNumber,
		DueDate:      m.DueDate,
		PrincipalDue: m.PrincipalDue,
		InterestDue:  m.InterestDue,
		TotalDue:     m.TotalDue,
		Status:       domain.ScheduleEntryStatus(m.Status),
		PaidAt:       m.PaidAt,
	}
}

// ToDomainScheduleEntrySlice converts model schedule entries to domain
func ToDomainScheduleEntrySlice(ms []models.RepaymentScheduleEntry) []domain.RepaymentScheduleEntry {
	ds := make([]domain.RepaymentScheduleEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainScheduleEntry(m)
	}
	return ds
}
