package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntryStatus is the settlement state of a weekly installment.
type ScheduleEntryStatus string

const (
	ScheduleStatusPending ScheduleEntryStatus = "pending"
	ScheduleStatusPaid    ScheduleEntryStatus = "paid"
	ScheduleStatusOverdue ScheduleEntryStatus = "overdue"
)

// RepaymentScheduleEntry is one weekly installment of a disbursed loan.
// Week numbers are contiguous from 1 with no gaps. There is no partial-paid
// state: a payment either covers an entry in full or leaves it unsettled.
type RepaymentScheduleEntry struct {
	EntryID      string              `json:"entryID"`
	LoanID       string              `json:"loanID"`
	WeekNumber   int                 `json:"weekNumber"`
	DueDate      time.Time           `json:"dueDate"`
	PrincipalDue decimal.Decimal     `json:"principalDue"`
	InterestDue  decimal.Decimal     `json:"interestDue"`
	TotalDue     decimal.Decimal     `json:"totalDue"`
	Status       ScheduleEntryStatus `json:"status"`
	PaidAt       *time.Time          `json:"paidAt,omitempty"`
}

// DisplayStatus derives the reporting status of the entry as of a date:
// a pending entry past its due date reads as overdue. Persisted state is
// not changed; overdue is a point-in-time classification.
func (e RepaymentScheduleEntry) DisplayStatus(asOf time.Time) ScheduleEntryStatus {
	if e.Status == ScheduleStatusPending && e.DueDate.Before(asOf) {
		return ScheduleStatusOverdue
	}
	return e.Status
}
