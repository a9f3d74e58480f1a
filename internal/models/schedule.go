package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RepaymentScheduleEntry is the repayment_schedule_entries table row.
type RepaymentScheduleEntry struct {
	EntryID      string          `db:"entry_id"`
	LoanID       string          `db:"loan_id"`
	WeekNumber   int             `db:"week_number"`
	DueDate      time.Time       `db:"due_date"`
	PrincipalDue decimal.Decimal `db:"principal_due"`
	InterestDue  decimal.Decimal `db:"interest_due"`
	TotalDue     decimal.Decimal `db:"total_due"`
	Status       string          `db:"status"`
	PaidAt       *time.Time      `db:"paid_at"`
}
