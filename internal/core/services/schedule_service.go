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
	"github.com/kapatiran-mfi/microfin_ops_app/internal/utils"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ScheduleComputation is the full derived-amount set for one loan term.
type ScheduleComputation struct {
	TotalInterest decimal.Decimal
	CBUAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	WeeklyPayment decimal.Decimal
	Entries       []domain.RepaymentScheduleEntry
}

// ComputeRepaymentSchedule derives a loan's simple-interest amounts and
// weekly installment list. The monthly rate is converted through the 4.33
// weeks-per-month factor; every derived column is rounded to centavos
// independently, so the installment columns may drift from the headline
// totals by a fraction of a centavo per week. The drift is accepted, not
// redistributed.
//
// Due dates are weekly from startDate: week k falls k*7 days after it.
func ComputeRepaymentSchedule(loanID string, principal, monthlyRatePct decimal.Decimal, termWeeks int, startDate time.Time) ScheduleComputation {
	weeks := decimal.NewFromInt(int64(termWeeks))
	termMonths := weeks.Div(utils.WeeksPerMonth)

	totalInterest := utils.RoundCentavos(principal.Mul(monthlyRatePct).Div(oneHundred).Mul(termMonths))
	cbuAmount := utils.RoundCentavos(principal.Mul(utils.CBURate))
	totalAmount := principal.Add(totalInterest)
	weeklyPayment := utils.RoundCentavos(totalAmount.Div(weeks))

	weeklyPrincipal := utils.RoundCentavos(principal.Div(weeks))
	weeklyInterest := utils.RoundCentavos(totalInterest.Div(weeks))

	entries := make([]domain.RepaymentScheduleEntry, termWeeks)
	for week := 1; week <= termWeeks; week++ {
		entries[week-1] = domain.RepaymentScheduleEntry{
			EntryID:      uuid.NewString(),
			LoanID:       loanID,
			WeekNumber:   week,
			DueDate:      startDate.AddDate(0, 0, 7*week),
			PrincipalDue: weeklyPrincipal,
			InterestDue:  weeklyInterest,
			TotalDue:     weeklyPrincipal.Add(weeklyInterest),
			Status:       domain.ScheduleStatusPending,
		}
	}

	return ScheduleComputation{
		TotalInterest: totalInterest,
		CBUAmount:     cbuAmount,
		TotalAmount:   totalAmount,
		WeeklyPayment: weeklyPayment,
		Entries:       entries,
	}
}

type scheduleService struct {
	BaseService
	loanRepo     portsrepo.LoanRepositoryWithTx
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	audit        portssvc.AuditPublisher
}

// NewScheduleService creates the disbursement and schedule read service.
func NewScheduleService(base BaseService, loanRepo portsrepo.LoanRepositoryWithTx, scheduleRepo portsrepo.ScheduleRepositoryFacade, audit portssvc.AuditPublisher) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		BaseService:  base,
		loanRepo:     loanRepo,
		scheduleRepo: scheduleRepo,
		audit:        audit,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// DisburseLoan moves an approved loan to disbursed, computing and persisting
// its derived amounts and full installment list in one unit of work. The
// outstanding balance opens at principal plus total interest.
func (s *scheduleService) DisburseLoan(ctx context.Context, actorID, loanID string, req dto.DisburseLoanRequest) (*domain.Loan, []domain.RepaymentScheduleEntry, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceLoans, domain.ActionEdit)
	if err != nil {
		return nil, nil, err
	}

	var (
		updated domain.Loan
		entries []domain.RepaymentScheduleEntry
	)
	txErr := s.loanRepo.RunAtomic(ctx, func(ctx context.Context) error {
		loan, err := s.loanRepo.FindLoanByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status != domain.LoanStatusApproved {
			return fmt.Errorf("%w: loan %s is %s, only approved loans can be disbursed",
				apperrors.ErrConflict, loanID, loan.Status)
		}

		comp := ComputeRepaymentSchedule(loanID, loan.PrincipalAmount, loan.MonthlyRate, loan.TermWeeks, req.StartDate)

		now := time.Now().UTC()
		loan.TotalInterest = comp.TotalInterest
		loan.CBUAmount = comp.CBUAmount
		loan.WeeklyPayment = comp.WeeklyPayment
		loan.OutstandingBalance = comp.TotalAmount
		loan.Status = domain.LoanStatusDisbursed
		loan.DisbursedAt = &now
		loan.LastUpdatedAt = now
		loan.LastUpdatedBy = actor.UserID

		if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
			return fmt.Errorf("updating loan %s: %w", loanID, err)
		}
		if err := s.scheduleRepo.SaveScheduleEntries(ctx, comp.Entries); err != nil {
			return fmt.Errorf("saving schedule for loan %s: %w", loanID, err)
		}

		updated = *loan
		entries = comp.Entries
		return nil
	})

	if txErr != nil {
		s.audit.Publish(domain.AuditEntry{
			UserID:       actor.UserID,
			Action:       "loan_disbursed",
			ResourceType: "loan",
			ResourceID:   loanID,
			Success:      false,
			ErrorMessage: txErr.Error(),
		})
		return nil, nil, txErr
	}

	s.audit.Publish(domain.AuditEntry{
		UserID:       actor.UserID,
		Action:       "loan_disbursed",
		ResourceType: "loan",
		ResourceID:   loanID,
		NewValues: fmt.Sprintf(`{"status":%q,"outstandingBalance":%q,"weeklyPayment":%q}`,
			updated.Status, updated.OutstandingBalance, updated.WeeklyPayment),
		Success: true,
	})

	return &updated, entries, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, actorID, loanID string) ([]domain.RepaymentScheduleEntry, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceLoans, domain.ActionView); err != nil {
		return nil, err
	}
	if _, err := s.loanRepo.FindLoanByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.FindScheduleByLoanID(ctx, loanID)
}
