package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the loans table row.
type Loan struct {
	LoanID          string          `db:"loan_id"`
	MemberID        string          `db:"member_id"`
	CenterID        string          `db:"center_id"`
	PrincipalAmount decimal.Decimal `db:"principal_amount"`
	MonthlyRate     decimal.Decimal `db:"monthly_rate"`
	TermWeeks       int             `db:"term_weeks"`
	Purpose         string          `db:"purpose"`
	Status          string          `db:"status"`

	TotalInterest      decimal.Decimal `db:"total_interest"`
	CBUAmount          decimal.Decimal `db:"cbu_amount"`
	WeeklyPayment      decimal.Decimal `db:"weekly_payment"`
	OutstandingBalance decimal.Decimal `db:"outstanding_balance"`

	FieldOfficerID  *string    `db:"field_officer_id"`
	BranchManagerID *string    `db:"branch_manager_id"`
	AreaManagerID   *string    `db:"area_manager_id"`
	ApprovalDate    *time.Time `db:"approval_date"`
	DisbursedAt     *time.Time `db:"disbursed_at"`

	AuditFields
}

// LoanApprovalRecord is the loan_approval_records table row. Append-only.
type LoanApprovalRecord struct {
	RecordID     string    `db:"record_id"`
	LoanID       string    `db:"loan_id"`
	ApproverID   string    `db:"approver_id"`
	ApproverRole string    `db:"approver_role"`
	Action       string    `db:"action"`
	FromStatus   string    `db:"from_status"`
	ToStatus     string    `db:"to_status"`
	Comment      string    `db:"comment"`
	CreatedAt    time.Time `db:"created_at"`
}
