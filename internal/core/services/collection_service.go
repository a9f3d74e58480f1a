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
	"github.com/shopspring/decimal"
)

type collectionService struct {
	BaseService
	loanRepo       portsrepo.LoanRepositoryWithTx
	scheduleRepo   portsrepo.ScheduleRepositoryFacade
	collectionRepo portsrepo.CollectionRepositoryFacade
	memberRepo     portsrepo.MemberRepositoryFacade
	centerRepo     portsrepo.CenterRepositoryFacade
	audit          portssvc.AuditPublisher
}

// NewCollectionService creates the weekly collection batch processor.
func NewCollectionService(
	base BaseService,
	loanRepo portsrepo.LoanRepositoryWithTx,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	collectionRepo portsrepo.CollectionRepositoryFacade,
	memberRepo portsrepo.MemberRepositoryFacade,
	centerRepo portsrepo.CenterRepositoryFacade,
	audit portssvc.AuditPublisher,
) portssvc.CollectionSvcFacade {
	return &collectionService{
		BaseService:    base,
		loanRepo:       loanRepo,
		scheduleRepo:   scheduleRepo,
		collectionRepo: collectionRepo,
		memberRepo:     memberRepo,
		centerRepo:     centerRepo,
		audit:          audit,
	}
}

var _ portssvc.CollectionSvcFacade = (*collectionService)(nil)

// ProcessCollection applies one center sitting's payments as a single unit
// of work. Any invalid member line aborts the whole batch; a sheet is only
// ever persisted complete, with totals equal to the exact sum of its lines.
//
// Loan payments settle installments oldest-due-first and only in full;
// there is no partial-paid installment. A payment above the loan's
// outstanding balance is capped at the balance, with the unapplied excess
// flagged in the entry notes.
func (s *collectionService) ProcessCollection(ctx context.Context, actorID string, req dto.ProcessCollectionRequest) (*dto.CollectionResultResponse, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceCollections, domain.ActionCreate)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC()
	if dateOnly(req.CollectionDate).After(dateOnly(today)) {
		return nil, apperrors.NewValidationError("collection date cannot be in the future")
	}

	center, err := s.centerRepo.FindCenterByID(ctx, req.CenterID)
	if err != nil {
		return nil, fmt.Errorf("resolving center %s: %w", req.CenterID, err)
	}
	if !center.IsActive {
		return nil, apperrors.NewValidationError("center is not active")
	}

	existing, err := s.collectionRepo.FindSheetByCenterAndDate(ctx, req.CenterID, dateOnly(req.CollectionDate))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("checking for duplicate sheet: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a collection sheet for center %s on %s already exists",
			apperrors.ErrDuplicate, req.CenterID, dateOnly(req.CollectionDate).Format("2006-01-02"))
	}

	sheetID := uuid.NewString()
	now := time.Now().UTC()

	var sheet domain.CollectionSheet
	txErr := s.loanRepo.RunAtomic(ctx, func(ctx context.Context) error {
		sheet = domain.CollectionSheet{
			SheetID:         sheetID,
			CenterID:        req.CenterID,
			CollectionDate:  dateOnly(req.CollectionDate),
			ExpectedMembers: len(req.Entries),
			TotalLoan:       decimal.Zero,
			TotalCBU:        decimal.Zero,
			TotalInsurance:  decimal.Zero,
			TotalCollected:  decimal.Zero,
			Status:          domain.SheetStatusDraft,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}

		for i, line := range req.Entries {
			entry, err := s.applyEntry(ctx, actor, req.CenterID, sheetID, line, now)
			if err != nil {
				return fmt.Errorf("entry %d (member %s): %w", i+1, line.MemberID, err)
			}

			sheet.Entries = append(sheet.Entries, *entry)
			if entry.IsPresent {
				sheet.PresentMembers++
			}
			sheet.TotalLoan = sheet.TotalLoan.Add(entry.LoanPayment)
			sheet.TotalCBU = sheet.TotalCBU.Add(entry.CBUPayment)
			sheet.TotalInsurance = sheet.TotalInsurance.Add(entry.InsurancePayment)
		}
		sheet.TotalCollected = sheet.TotalLoan.Add(sheet.TotalCBU)

		if err := s.collectionRepo.SaveCollectionSheet(ctx, sheet); err != nil {
			return fmt.Errorf("saving collection sheet: %w", err)
		}
		return nil
	})

	if txErr != nil {
		s.audit.Publish(domain.AuditEntry{
			UserID:       actor.UserID,
			Action:       "collection_processed",
			ResourceType: "collection_sheet",
			ResourceID:   sheetID,
			Success:      false,
			ErrorMessage: txErr.Error(),
		})
		return nil, txErr
	}

	s.audit.Publish(domain.AuditEntry{
		UserID:       actor.UserID,
		Action:       "collection_processed",
		ResourceType: "collection_sheet",
		ResourceID:   sheetID,
		NewValues: fmt.Sprintf(`{"centerID":%q,"totalCollected":%q,"presentMembers":%d}`,
			sheet.CenterID, sheet.TotalCollected, sheet.PresentMembers),
		Success: true,
	})

	return &dto.CollectionResultResponse{
		CollectionSheetID: sheetID,
		TotalCollected:    sheet.TotalCollected,
		PresentMembers:    sheet.PresentMembers,
	}, nil
}

// applyEntry validates and applies one member's line inside the batch
// transaction, returning the persisted-sheet entry with the applied (capped)
// loan payment.
func (s *collectionService) applyEntry(ctx context.Context, actor *domain.StaffUser, centerID, sheetID string, line dto.CollectionEntryRequest, now time.Time) (*domain.CollectionEntry, error) {
	if line.LoanPayment.IsNegative() || line.CBUPayment.IsNegative() || line.InsurancePayment.IsNegative() {
		return nil, apperrors.NewValidationError("payment amounts cannot be negative")
	}
	if !line.IsPresent &&
		(line.LoanPayment.IsPositive() || line.CBUPayment.IsPositive() || line.InsurancePayment.IsPositive()) {
		return nil, apperrors.NewValidationError("absent members cannot have payments")
	}

	member, err := s.memberRepo.FindMemberByID(ctx, line.MemberID)
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, apperrors.NewValidationError("member is not active")
	}
	if member.CenterID != centerID {
		return nil, apperrors.NewValidationError("member does not belong to this center")
	}

	notes := line.Notes
	appliedLoan := decimal.Zero

	if line.LoanPayment.IsPositive() {
		if line.LoanID == nil {
			return nil, apperrors.NewValidationError("loan payment requires a loan ID")
		}
		applied, overpaid, err := s.applyLoanPayment(ctx, actor, line.MemberID, *line.LoanID, line.LoanPayment, now)
		if err != nil {
			return nil, err
		}
		appliedLoan = applied
		if overpaid.IsPositive() {
			if notes != "" {
				notes += "; "
			}
			notes += fmt.Sprintf("overpayment ₱%s unapplied", overpaid.StringFixed(2))
		}
	}

	if line.CBUPayment.IsPositive() {
		if err := s.memberRepo.AddToCBUBalance(ctx, line.MemberID, line.CBUPayment, actor.UserID, now); err != nil {
			return nil, fmt.Errorf("crediting CBU: %w", err)
		}
	}

	return &domain.CollectionEntry{
		EntryID:          uuid.NewString(),
		SheetID:          sheetID,
		MemberID:         line.MemberID,
		LoanID:           line.LoanID,
		IsPresent:        line.IsPresent,
		LoanPayment:      appliedLoan,
		CBUPayment:       line.CBUPayment,
		InsurancePayment: line.InsurancePayment,
		Notes:            notes,
	}, nil
}

// applyLoanPayment locks the loan, caps the payment at the outstanding
// balance, settles installments oldest-due-first while the remainder covers
// a full installment, and rolls the loan status forward (disbursed to
// active on first payment, completed at zero balance). Returns the applied
// amount and any unapplied excess.
func (s *collectionService) applyLoanPayment(ctx context.Context, actor *domain.StaffUser, memberID, loanID string, payment decimal.Decimal, now time.Time) (applied, overpaid decimal.Decimal, err error) {
	loan, err := s.loanRepo.FindLoanByIDForUpdate(ctx, loanID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if loan.MemberID != memberID {
		return decimal.Zero, decimal.Zero, apperrors.NewValidationError("loan does not belong to this member")
	}
	if loan.Status != domain.LoanStatusDisbursed && loan.Status != domain.LoanStatusActive {
		return decimal.Zero, decimal.Zero,
			apperrors.NewValidationError(fmt.Sprintf("loan is %s and cannot accept payments", loan.Status))
	}

	applied = payment
	overpaid = decimal.Zero
	if payment.GreaterThan(loan.OutstandingBalance) {
		applied = loan.OutstandingBalance
		overpaid = payment.Sub(loan.OutstandingBalance)
	}

	unsettled, err := s.scheduleRepo.FindUnsettledByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("loading schedule for loan %s: %w", loanID, err)
	}

	remaining := applied
	var settledIDs []string
	for _, entry := range unsettled {
		if remaining.LessThan(entry.TotalDue) {
			break
		}
		settledIDs = append(settledIDs, entry.EntryID)
		remaining = remaining.Sub(entry.TotalDue)
	}
	if len(settledIDs) > 0 {
		if err := s.scheduleRepo.MarkEntriesPaid(ctx, settledIDs, now); err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("settling installments for loan %s: %w", loanID, err)
		}
	}

	loan.OutstandingBalance = loan.OutstandingBalance.Sub(applied)
	if loan.OutstandingBalance.IsZero() {
		loan.Status = domain.LoanStatusCompleted
	} else if loan.Status == domain.LoanStatusDisbursed {
		loan.Status = domain.LoanStatusActive
	}
	loan.LastUpdatedAt = now
	loan.LastUpdatedBy = actor.UserID

	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("updating loan %s: %w", loanID, err)
	}
	return applied, overpaid, nil
}

func (s *collectionService) GetSheet(ctx context.Context, actorID, sheetID string) (*domain.CollectionSheet, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceCollections, domain.ActionView); err != nil {
		return nil, err
	}
	return s.collectionRepo.FindSheetByID(ctx, sheetID)
}

func (s *collectionService) ListSheets(ctx context.Context, actorID, centerID string, limit, offset int) ([]domain.CollectionSheet, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceCollections, domain.ActionView); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.collectionRepo.ListSheetsByCenter(ctx, centerID, limit, offset)
}

// VerifySheet flips a draft sheet to verified, write-once.
func (s *collectionService) VerifySheet(ctx context.Context, actorID, sheetID string) (*domain.CollectionSheet, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceCollections, domain.ActionEdit)
	if err != nil {
		return nil, err
	}

	sheet, err := s.collectionRepo.FindSheetByID(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	if sheet.Status == domain.SheetStatusVerified {
		return nil, fmt.Errorf("%w: sheet %s is already verified", apperrors.ErrConflict, sheetID)
	}

	now := time.Now().UTC()
	if err := s.collectionRepo.MarkSheetVerified(ctx, sheetID, actor.UserID, now); err != nil {
		return nil, fmt.Errorf("verifying sheet %s: %w", sheetID, err)
	}

	sheet.Status = domain.SheetStatusVerified
	sheet.VerifiedBy = &actor.UserID
	sheet.VerifiedAt = &now

	s.audit.Publish(domain.AuditEntry{
		UserID:       actor.UserID,
		Action:       "collection_verified",
		ResourceType: "collection_sheet",
		ResourceID:   sheetID,
		Success:      true,
	})
	return sheet, nil
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
