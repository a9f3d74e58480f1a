package services

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
)

// LoanSvcFacade covers loan origination and reads. Status transitions live
// on ApprovalSvcFacade; disbursement on ScheduleSvcFacade.
type LoanSvcFacade interface {
	// CreateLoan originates a draft loan for a member.
	CreateLoan(ctx context.Context, actorID string, req dto.CreateLoanRequest) (*domain.Loan, error)

	// GetLoan retrieves a loan by ID.
	GetLoan(ctx context.Context, actorID, loanID string) (*domain.Loan, error)

	// ListLoans retrieves loans filtered by center and/or status.
	ListLoans(ctx context.Context, actorID string, params dto.ListLoansParams) ([]domain.Loan, error)

	// GetApprovalTrail retrieves the append-only approval record list of a loan.
	GetApprovalTrail(ctx context.Context, actorID, loanID string) ([]domain.LoanApprovalRecord, error)
}

// ApprovalSvcFacade is the loan approval workflow.
type ApprovalSvcFacade interface {
	// DecideLoan applies one approval action (approve, reject,
	// request_revision) to a loan and returns the updated loan. Denied
	// authority is a non-event: no state change, no approval record.
	DecideLoan(ctx context.Context, actorID, loanID string, req dto.ApprovalDecisionRequest) (*domain.Loan, error)
}
