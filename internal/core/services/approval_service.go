package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
)

type approvalService struct {
	BaseService
	loanRepo portsrepo.LoanRepositoryWithTx
	audit    portssvc.AuditPublisher
}

// NewApprovalService creates the loan approval workflow service.
func NewApprovalService(base BaseService, loanRepo portsrepo.LoanRepositoryWithTx, audit portssvc.AuditPublisher) portssvc.ApprovalSvcFacade {
	return &approvalService{
		BaseService: base,
		loanRepo:    loanRepo,
		audit:       audit,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// DecideLoan applies one approval action to a loan under a row lock, so
// concurrent decisions on the same loan serialize and the loser sees the
// terminal-state conflict.
//
// An authority failure is a non-event: the loan is untouched, no approval
// record is written, and only a failed audit entry is emitted.
func (s *approvalService) DecideLoan(ctx context.Context, actorID, loanID string, req dto.ApprovalDecisionRequest) (*domain.Loan, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceLoans, domain.ActionApprove)
	if err != nil {
		return nil, err
	}
	if !domain.ValidApprovalAction(req.Action) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown approval action %q", req.Action))
	}

	var (
		updated    domain.Loan
		fromStatus domain.LoanStatus
	)
	txErr := s.loanRepo.RunAtomic(ctx, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}

		if loan.Status.IsTerminalApproval() {
			return fmt.Errorf("%w: loan %s is already %s", apperrors.ErrConflict, loanID, loan.Status)
		}

		// A field officer's approve is a submission, not an authority
		// exercise, so the amount ceiling does not apply to it.
		if req.Action == domain.ApprovalActionApprove && actor.Role != domain.RoleFieldOfficer {
			if !s.Permissions().CanApproveLoan(actor.Role, loan.PrincipalAmount) {
				return fmt.Errorf("%w: role %s cannot approve a loan of %s",
					apperrors.ErrForbidden, actor.Role, loan.PrincipalAmount)
			}
		}

		next := domain.NextStatus(actor.Role, loan.PrincipalAmount, req.Action)
		if req.Action == domain.ApprovalActionApprove && !next.MovesForwardFrom(loan.Status) {
			return fmt.Errorf("%w: loan %s cannot move from %s to %s",
				apperrors.ErrConflict, loanID, loan.Status, next)
		}

		now := time.Now().UTC()
		from := loan.Status
		fromStatus = from
		loan.Status = next

		// Attribution fields are write-once per tier. Admins act outside
		// the tier ladder and stamp nothing.
		switch actor.Role {
		case domain.RoleFieldOfficer:
			if loan.FieldOfficerID == nil {
				loan.FieldOfficerID = &actor.UserID
			}
		case domain.RoleBranchManager:
			if loan.BranchManagerID == nil {
				loan.BranchManagerID = &actor.UserID
			}
		case domain.RoleAreaManager:
			if loan.AreaManagerID == nil {
				loan.AreaManagerID = &actor.UserID
			}
		}
		if next == domain.LoanStatusApproved && loan.ApprovalDate == nil {
			loan.ApprovalDate = &now
		}

		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = actor.UserID

		if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
			return fmt.Errorf("updating loan %s: %w", loanID, err)
		}

		record := domain.LoanApprovalRecord{
			RecordID:     uuid.NewString(),
			LoanID:       loanID,
			ApproverID:   actor.UserID,
			ApproverRole: actor.Role,
			Action:       req.Action,
			FromStatus:   from,
			ToStatus:     next,
			Comment:      req.Comment,
			CreatedAt:    now,
		}
		if err := s.loanRepo.AppendApprovalRecord(ctx, record); err != nil {
			return fmt.Errorf("appending approval record for loan %s: %w", loanID, err)
		}

		updated = *loan
		return nil
	})

	if txErr != nil {
		s.audit.Publish(domain.AuditEntry{
			UserID:       actor.UserID,
			Action:       "loan_decision_" + string(req.Action),
			ResourceType: "loan",
			ResourceID:   loanID,
			Success:      false,
			ErrorMessage: txErr.Error(),
		})
		if errors.Is(txErr, apperrors.ErrForbidden) || errors.Is(txErr, apperrors.ErrConflict) ||
			errors.Is(txErr, apperrors.ErrNotFound) || errors.Is(txErr, apperrors.ErrValidation) {
			return nil, txErr
		}
		return nil, fmt.Errorf("deciding loan %s: %w", loanID, txErr)
	}

	s.audit.Publish(domain.AuditEntry{
		UserID:       actor.UserID,
		Action:       "loan_decision_" + string(req.Action),
		ResourceType: "loan",
		ResourceID:   loanID,
		OldValues:    fmt.Sprintf(`{"status":%q}`, fromStatus),
		NewValues:    fmt.Sprintf(`{"status":%q}`, updated.Status),
		Success:      true,
	})

	return &updated, nil
}
