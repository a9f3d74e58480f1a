package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/shopspring/decimal"
)

type loanService struct {
	BaseService
	loanRepo   portsrepo.LoanRepositoryWithTx
	memberRepo portsrepo.MemberRepositoryFacade
	audit      portssvc.AuditPublisher
}

// NewLoanService creates the loan origination and read service.
func NewLoanService(base BaseService, loanRepo portsrepo.LoanRepositoryWithTx, memberRepo portsrepo.MemberRepositoryFacade, audit portssvc.AuditPublisher) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: base,
		loanRepo:    loanRepo,
		memberRepo:  memberRepo,
		audit:       audit,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateLoan originates a draft loan for an active member. Derived amounts
// (interest, CBU, weekly payment) stay zero until disbursement computes the
// schedule.
func (s *loanService) CreateLoan(ctx context.Context, actorID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceLoans, domain.ActionCreate)
	if err != nil {
		return nil, err
	}

	if !req.PrincipalAmount.IsPositive() {
		return nil, apperrors.NewValidationError("principal amount must be positive")
	}
	if req.MonthlyRate.IsNegative() {
		return nil, apperrors.NewValidationError("monthly rate cannot be negative")
	}

	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("resolving member %s: %w", req.MemberID, err)
	}
	if !member.IsActive {
		return nil, apperrors.NewValidationError("member is not active")
	}
	if member.CenterID != req.CenterID {
		return nil, apperrors.NewValidationError("member does not belong to the given center")
	}

	now := time.Now().UTC()
	loan := domain.Loan{
		LoanID:             uuid.NewString(),
		MemberID:           req.MemberID,
		CenterID:           req.CenterID,
		PrincipalAmount:    req.PrincipalAmount,
		MonthlyRate:        req.MonthlyRate,
		TermWeeks:          req.TermWeeks,
		Purpose:            req.Purpose,
		Status:             domain.LoanStatusDraft,
		TotalInterest:      decimal.Zero,
		CBUAmount:          decimal.Zero,
		WeeklyPayment:      decimal.Zero,
		OutstandingBalance: decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		return nil, fmt.Errorf("saving loan: %w", err)
	}

	s.audit.Publish(domain.AuditEntry{
		UserID:       actor.UserID,
		Action:       "loan_created",
		ResourceType: "loan",
		ResourceID:   loan.LoanID,
		NewValues:    fmt.Sprintf(`{"status":%q,"principalAmount":%q}`, loan.Status, loan.PrincipalAmount),
		Success:      true,
	})

	return &loan, nil
}

func (s *loanService) GetLoan(ctx context.Context, actorID, loanID string) (*domain.Loan, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceLoans, domain.ActionView); err != nil {
		return nil, err
	}
	return s.loanRepo.FindLoanByID(ctx, loanID)
}

func (s *loanService) ListLoans(ctx context.Context, actorID string, params dto.ListLoansParams) ([]domain.Loan, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceLoans, domain.ActionView); err != nil {
		return nil, err
	}
	if params.Limit <= 0 {
		params.Limit = 20
	}
	return s.loanRepo.ListLoans(ctx, portsrepo.ListLoansParams{
		CenterID: params.CenterID,
		Status:   params.Status,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
}

func (s *loanService) GetApprovalTrail(ctx context.Context, actorID, loanID string) ([]domain.LoanApprovalRecord, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceLoans, domain.ActionView); err != nil {
		return nil, err
	}
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.loanRepo.ListApprovalRecordsByLoan(ctx, loanID)
}
