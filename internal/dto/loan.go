package dto

import (
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest defines the data needed to originate a draft loan.
type CreateLoanRequest struct {
	MemberID        string          `json:"memberID" binding:"required"`
	CenterID        string          `json:"centerID" binding:"required"`
	PrincipalAmount decimal.Decimal `json:"principalAmount" binding:"required"`
	MonthlyRate     decimal.Decimal `json:"monthlyRate"` // percent per month; zero allowed
	TermWeeks       int             `json:"termWeeks" binding:"required,min=1,max=200"`
	Purpose         string          `json:"purpose"`
}

// ApprovalDecisionRequest defines one approval-workflow action on a loan.
type ApprovalDecisionRequest struct {
	Action  domain.ApprovalAction `json:"action" binding:"required,oneof=approve reject request_revision"`
	Comment string                `json:"comment"`
}

// DisburseLoanRequest defines the data needed to disburse an approved loan.
// StartDate anchors the weekly due dates; the first installment falls seven
// days after it.
type DisburseLoanRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	CenterID string             `form:"centerID"`
	Status   *domain.LoanStatus `form:"status"`
	Limit    int                `form:"limit,default=20"`
	Offset   int                `form:"offset,default=0"`
}

// LoanResponse mirrors domain.Loan for API responses.
type LoanResponse struct {
	LoanID             string            `json:"loanID"`
	MemberID           string            `json:"memberID"`
	CenterID           string            `json:"centerID"`
	PrincipalAmount    decimal.Decimal   `json:"principalAmount"`
	MonthlyRate        decimal.Decimal   `json:"monthlyRate"`
	TermWeeks          int               `json:"termWeeks"`
	Purpose            string            `json:"purpose,omitempty"`
	Status             domain.LoanStatus `json:"status"`
	TotalInterest      decimal.Decimal   `json:"totalInterest"`
	CBUAmount          decimal.Decimal   `json:"cbuAmount"`
	WeeklyPayment      decimal.Decimal   `json:"weeklyPayment"`
	OutstandingBalance decimal.Decimal   `json:"outstandingBalance"`
	FieldOfficerID     *string           `json:"fieldOfficerID,omitempty"`
	BranchManagerID    *string           `json:"branchManagerID,omitempty"`
	AreaManagerID      *string           `json:"areaManagerID,omitempty"`
	ApprovalDate       *time.Time        `json:"approvalDate,omitempty"`
	DisbursedAt        *time.Time        `json:"disbursedAt,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	CreatedBy          string            `json:"createdBy"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanID:             l.LoanID,
		MemberID:           l.MemberID,
		CenterID:           l.CenterID,
		PrincipalAmount:    l.PrincipalAmount,
		MonthlyRate:        l.MonthlyRate,
		TermWeeks:          l.TermWeeks,
		Purpose:            l.Purpose,
		Status:             l.Status,
		TotalInterest:      l.TotalInterest,
		CBUAmount:          l.CBUAmount,
		WeeklyPayment:      l.WeeklyPayment,
		OutstandingBalance: l.OutstandingBalance,
		FieldOfficerID:     l.FieldOfficerID,
		BranchManagerID:    l.BranchManagerID,
		AreaManagerID:      l.AreaManagerID,
		ApprovalDate:       l.ApprovalDate,
		DisbursedAt:        l.DisbursedAt,
		CreatedAt:          l.CreatedAt,
		CreatedBy:          l.CreatedBy,
	}
}

// ToListLoanResponse converts a slice of domain.Loan to response DTOs.
func ToListLoanResponse(loans []domain.Loan) []LoanResponse {
	res := make([]LoanResponse, len(loans))
	for i := range loans {
		res[i] = ToLoanResponse(&loans[i])
	}
	return res
}

// ScheduleEntryResponse mirrors one repayment schedule entry. Status is the
// derived display status: pending entries past due read as overdue.
type ScheduleEntryResponse struct {
	EntryID      string                     `json:"entryID"`
	WeekNumber   int                        `json:"weekNumber"`
	DueDate      time.Time                  `json:"dueDate"`
	PrincipalDue decimal.Decimal            `json:"principalDue"`
	InterestDue  decimal.Decimal            `json:"interestDue"`
	TotalDue     decimal.Decimal            `json:"totalDue"`
	Status       domain.ScheduleEntryStatus `json:"status"`
	PaidAt       *time.Time                 `json:"paidAt,omitempty"`
}

// ToScheduleResponse converts schedule entries, deriving display status as of now.
func ToScheduleResponse(entries []domain.RepaymentScheduleEntry, asOf time.Time) []ScheduleEntryResponse {
	res := make([]ScheduleEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ScheduleEntryResponse{
			EntryID:      e.EntryID,
			WeekNumber:   e.WeekNumber,
			DueDate:      e.DueDate,
			PrincipalDue: e.PrincipalDue,
			InterestDue:  e.InterestDue,
			TotalDue:     e.TotalDue,
			Status:       e.DisplayStatus(asOf),
			PaidAt:       e.PaidAt,
		}
	}
	return res
}

// ApprovalRecordResponse mirrors one loan approval trail row.
type ApprovalRecordResponse struct {
	RecordID     string                `json:"recordID"`
	LoanID       string                `json:"loanID"`
	ApproverID   string                `json:"approverID"`
	ApproverRole domain.Role           `json:"approverRole"`
	Action       domain.ApprovalAction `json:"action"`
	FromStatus   domain.LoanStatus     `json:"fromStatus"`
	ToStatus     domain.LoanStatus     `json:"toStatus"`
	Comment      string                `json:"comment,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ToApprovalRecordResponses converts approval records to response DTOs.
func ToApprovalRecordResponses(records []domain.LoanApprovalRecord) []ApprovalRecordResponse {
	res := make([]ApprovalRecordResponse, len(records))
	for i, r := range records {
		res[i] = ApprovalRecordResponse{
			RecordID:     r.RecordID,
			LoanID:       r.LoanID,
			ApproverID:   r.ApproverID,
			ApproverRole: r.ApproverRole,
			Action:       r.Action,
			FromStatus:   r.FromStatus,
			ToStatus:     r.ToStatus,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt,
		}
	}
	return res
}
