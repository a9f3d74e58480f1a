package services

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
)

// ScheduleSvcFacade materializes repayment schedules and disburses loans.
type ScheduleSvcFacade interface {
	// DisburseLoan moves an approved loan to disbursed and persists its full
	// installment schedule in the same unit of work.
	DisburseLoan(ctx context.Context, actorID, loanID string, req dto.DisburseLoanRequest) (*domain.Loan, []domain.RepaymentScheduleEntry, error)

	// GetSchedule retrieves the installment list of a loan ordered by week.
	GetSchedule(ctx context.Context, actorID, loanID string) ([]domain.RepaymentScheduleEntry, error)
}
