package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestComputeRepaymentSchedule_StandardLoan(t *testing.T) {
	principal := decimal.NewFromInt(30000)
	rate := decimal.NewFromInt(2)
	termWeeks := 20
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	comp := services.ComputeRepaymentSchedule(uuid.NewString(), principal, rate, termWeeks, start)

	// 30000 x 2%/month over 20/4.33 months of simple interest.
	expectedInterest := decimal.NewFromFloat(2771.36)
	assert.True(t, comp.TotalInterest.Sub(expectedInterest).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"totalInterest = %s", comp.TotalInterest)

	assert.True(t, comp.CBUAmount.Equal(decimal.NewFromInt(1500)), "cbuAmount = %s", comp.CBUAmount)
	assert.True(t, comp.WeeklyPayment.Sub(decimal.NewFromFloat(1638.57)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.01)),
		"weeklyPayment = %s", comp.WeeklyPayment)

	// Per-column rounding may drift up to a centavo per week against the
	// headline totals.
	tolerance := decimal.NewFromFloat(0.01).Mul(decimal.NewFromInt(int64(termWeeks)))

	sumPrincipal := decimal.Zero
	sumTotal := decimal.Zero
	for _, e := range comp.Entries {
		sumPrincipal = sumPrincipal.Add(e.PrincipalDue)
		sumTotal = sumTotal.Add(e.TotalDue)
	}
	assert.True(t, sumPrincipal.Sub(principal).Abs().LessThanOrEqual(tolerance),
		"sum of principalDue = %s", sumPrincipal)
	assert.True(t, sumTotal.Sub(comp.TotalAmount).Abs().LessThanOrEqual(tolerance),
		"sum of totalDue = %s vs totalAmount = %s", sumTotal, comp.TotalAmount)
}

func TestComputeRepaymentSchedule_WeeklyDueDates(t *testing.T) {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	comp := services.ComputeRepaymentSchedule(uuid.NewString(), decimal.NewFromInt(5000), decimal.NewFromInt(3), 8, start)

	assert.Len(t, comp.Entries, 8)
	for i, e := range comp.Entries {
		assert.Equal(t, i+1, e.WeekNumber)
		assert.Equal(t, start.AddDate(0, 0, 7*(i+1)), e.DueDate)
		assert.Equal(t, domain.ScheduleStatusPending, e.Status)
		assert.True(t, e.TotalDue.Equal(e.PrincipalDue.Add(e.InterestDue)))
	}
}

func TestComputeRepaymentSchedule_ZeroRate(t *testing.T) {
	comp := services.ComputeRepaymentSchedule(uuid.NewString(), decimal.NewFromInt(10000), decimal.Zero, 10, time.Now())

	assert.True(t, comp.TotalInterest.IsZero())
	assert.True(t, comp.WeeklyPayment.Equal(decimal.NewFromInt(1000)))
	for _, e := range comp.Entries {
		assert.True(t, e.InterestDue.IsZero())
	}
}

type ScheduleServiceTestSuite struct {
	suite.Suite
	mockLoanRepo     *MockLoanRepository
	mockScheduleRepo *MockScheduleRepository
	mockUserRepo     *MockUserRepository
	audit            *recordingAudit
	service          portssvc.ScheduleSvcFacade

	branchManager domain.StaffUser
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockScheduleRepo = new(MockScheduleRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.audit = new(recordingAudit)

	base := services.NewBaseService(domain.DefaultPermissions(), suite.mockUserRepo)
	suite.service = services.NewScheduleService(base, suite.mockLoanRepo, suite.mockScheduleRepo, suite.audit)

	suite.branchManager = domain.StaffUser{UserID: uuid.NewString(), Username: "bm", Role: domain.RoleBranchManager, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.branchManager.UserID).Return(&suite.branchManager, nil)
}

func (suite *ScheduleServiceTestSuite) TestDisburseLoan_Success() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:          uuid.NewString(),
		MemberID:        uuid.NewString(),
		CenterID:        uuid.NewString(),
		PrincipalAmount: decimal.NewFromInt(30000),
		MonthlyRate:     decimal.NewFromInt(2),
		TermWeeks:       20,
		Status:          domain.LoanStatusApproved,
	}
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanStatusDisbursed &&
			l.DisbursedAt != nil &&
			l.OutstandingBalance.Equal(l.PrincipalAmount.Add(l.TotalInterest))
	})).Return(nil).Once()
	suite.mockScheduleRepo.On("SaveScheduleEntries", mock.Anything, mock.MatchedBy(func(entries []domain.RepaymentScheduleEntry) bool {
		return len(entries) == 20 && entries[0].LoanID == loan.LoanID
	})).Return(nil).Once()

	updated, entries, err := suite.service.DisburseLoan(ctx, suite.branchManager.UserID, loan.LoanID, dto.DisburseLoanRequest{StartDate: start})

	suite.Require().NoError(err)
	suite.Equal(domain.LoanStatusDisbursed, updated.Status)
	suite.Len(entries, 20)
	suite.False(updated.TotalInterest.IsZero())
	suite.False(updated.WeeklyPayment.IsZero())
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockScheduleRepo.AssertExpectations(suite.T())
}

func (suite *ScheduleServiceTestSuite) TestDisburseLoan_NotApproved_Conflict() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:          uuid.NewString(),
		PrincipalAmount: decimal.NewFromInt(10000),
		MonthlyRate:     decimal.NewFromInt(2),
		TermWeeks:       10,
		Status:          domain.LoanStatusPendingBranchMgr,
	}

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()

	_, _, err := suite.service.DisburseLoan(ctx, suite.branchManager.UserID, loan.LoanID, dto.DisburseLoanRequest{StartDate: time.Now()})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockScheduleRepo.AssertNotCalled(suite.T(), "SaveScheduleEntries", mock.Anything, mock.Anything)
}

func (suite *ScheduleServiceTestSuite) TestDisburseLoan_AlreadyDisbursed_Conflict() {
	ctx := context.Background()
	loan := &domain.Loan{
		LoanID:          uuid.NewString(),
		PrincipalAmount: decimal.NewFromInt(10000),
		MonthlyRate:     decimal.NewFromInt(2),
		TermWeeks:       10,
		Status:          domain.LoanStatusDisbursed,
	}

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()

	_, _, err := suite.service.DisburseLoan(ctx, suite.branchManager.UserID, loan.LoanID, dto.DisburseLoanRequest{StartDate: time.Now()})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
