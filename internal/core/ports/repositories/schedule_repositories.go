package repositories

import (
	"context"
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// ScheduleReader defines read operations for repayment schedules.
type ScheduleReader interface {
	// FindScheduleByLoanID retrieves all schedule entries of a loan ordered
	// by week number.
	FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.RepaymentScheduleEntry, error)

	// FindUnsettledByLoanIDForUpdate retrieves the loan's unsettled entries
	// (status != paid) in due-date order with row locks. Must be called
	// inside a unit of work.
	FindUnsettledByLoanIDForUpdate(ctx context.Context, loanID string) ([]domain.RepaymentScheduleEntry, error)
}

// ScheduleWriter defines write operations for repayment schedules.
type ScheduleWriter interface {
	// SaveScheduleEntries inserts the full installment list of a loan.
	SaveScheduleEntries(ctx context.Context, entries []domain.RepaymentScheduleEntry) error

	// MarkEntriesPaid settles the given entries, stamping the paid timestamp.
	MarkEntriesPaid(ctx context.Context, entryIDs []string, paidAt time.Time) error
}

// ScheduleRepositoryFacade combines schedule reader and writer.
type ScheduleRepositoryFacade interface {
	ScheduleReader
	ScheduleWriter
}
