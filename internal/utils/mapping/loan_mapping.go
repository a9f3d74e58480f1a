package mapping

import (
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:             d.LoanID,
		MemberID:           d.MemberID,
		CenterID:           d.CenterID,
		PrincipalAmount:    d.PrincipalAmount,
		MonthlyRate:        d.MonthlyRate,
		TermWeeks:          d.TermWeeks,
		Purpose:            d.Purpose,
		Status:             string(d.Status),
		TotalInterest:      d.TotalInterest,
		CBUAmount:          d.CBUAmount,
		WeeklyPayment:      d.WeeklyPayment,
		OutstandingBalance: d.OutstandingBalance,
		FieldOfficerID:     d.FieldOfficerID,
		BranchManagerID:    d.BranchManagerID,
		AreaManagerID:      d.AreaManagerID,
		ApprovalDate:       d.ApprovalDate,
		DisbursedAt:        d.DisbursedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:             m.LoanID,
		MemberID:           m.MemberID,
		CenterID:           m.CenterID,
		PrincipalAmount:    m.PrincipalAmount,
		MonthlyRate:        m.MonthlyRate,
		TermWeeks:          m.TermWeeks,
		Purpose:            m.Purpose,
		Status:             domain.LoanStatus(m.Status),
		TotalInterest:      m.TotalInterest,
		CBUAmount:          m.CBUAmount,
		WeeklyPayment:      m.WeeklyPayment,
		OutstandingBalance: m.OutstandingBalance,
		FieldOfficerID:     m.FieldOfficerID,
		BranchManagerID:    m.BranchManagerID,
		AreaManagerID:      m.AreaManagerID,
		ApprovalDate:       m.ApprovalDate,
		DisbursedAt:        m.DisbursedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model Loans to domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}

// ToModelApprovalRecord converts a domain LoanApprovalRecord to its model
func ToModelApprovalRecord(d domain.LoanApprovalRecord) models.LoanApprovalRecord {
	return models.LoanApprovalRecord{
		RecordID:     d.RecordID,
		LoanID:       d.LoanID,
		ApproverID:   d.ApproverID,
		ApproverRole: string(d.ApproverRole),
		Action:       string(d.Action),
		FromStatus:   string(d.FromStatus),
		ToStatus:     string(d.ToStatus),
		Comment:      d.Comment,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainApprovalRecord converts a model LoanApprovalRecord to its domain form
func ToDomainApprovalRecord(m models.LoanApprovalRecord) domain.LoanApprovalRecord {
	return domain.LoanApprovalRecord{
		RecordID:     m.RecordID,
		LoanID:       m.LoanID,
		ApproverID:   m.ApproverID,
		ApproverRole: domain.Role(m.ApproverRole),
		Action:       domain.ApprovalAction(m.Action),
		FromStatus:   domain.LoanStatus(m.FromStatus),
		ToStatus:     domain.LoanStatus(m.ToStatus),
		Comment:      m.Comment,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainApprovalRecordSlice converts model approval records to domain
func ToDomainApprovalRecordSlice(ms []models.LoanApprovalRecord) []domain.LoanApprovalRecord {
	ds := make([]domain.LoanApprovalRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainApprovalRecord(m)
	}
	return ds
}
