package repositories

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// ListLoansParams filters and pages loan listings.
type ListLoansParams struct {
	CenterID string
	Status   *domain.LoanStatus
	Limit    int
	Offset   int
}

// LoanReader defines read operations for loan data.
type LoanReader interface {
	// FindLoanByID retrieves a loan by its unique identifier.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)

	// FindLoanByIDForUpdate retrieves a loan with a row-level lock. It must
	// be called inside a unit of work; the lock serializes concurrent status
	// transitions on the same loan.
	FindLoanByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error)

	// ListLoans retrieves loans matching the filter, newest first.
	ListLoans(ctx context.Context, params ListLoansParams) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loan data.
type LoanWriter interface {
	// SaveLoan inserts a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoan persists all mutable loan fields as one atomic update.
	UpdateLoan(ctx context.Context, loan domain.Loan) error
}

// ApprovalRecordRepository handles the append-only loan approval trail.
type ApprovalRecordRepository interface {
	// AppendApprovalRecord appends one immutable approval record.
	AppendApprovalRecord(ctx context.Context, record domain.LoanApprovalRecord) error

	// ListApprovalRecordsByLoan retrieves the approval trail of a loan, oldest first.
	ListApprovalRecordsByLoan(ctx context.Context, loanID string) ([]domain.LoanApprovalRecord, error)
}

// LoanRepositoryFacade combines all loan-related repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
	ApprovalRecordRepository
}

// LoanRepositoryWithTx extends LoanRepositoryFacade with unit-of-work support.
type LoanRepositoryWithTx interface {
	LoanRepositoryFacade
	TransactionManager
}
