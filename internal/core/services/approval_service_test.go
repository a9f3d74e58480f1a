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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	mockLoanRepo *MockLoanRepository
	mockUserRepo *MockUserRepository
	audit        *recordingAudit
	service      portssvc.ApprovalSvcFacade

	fieldOfficer  domain.StaffUser
	branchManager domain.StaffUser
	areaManager   domain.StaffUser
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.audit = new(recordingAudit)

	base := services.NewBaseService(domain.DefaultPermissions(), suite.mockUserRepo)
	suite.service = services.NewApprovalService(base, suite.mockLoanRepo, suite.audit)

	suite.fieldOfficer = domain.StaffUser{UserID: uuid.NewString(), Username: "fo", Role: domain.RoleFieldOfficer, IsActive: true}
	suite.branchManager = domain.StaffUser{UserID: uuid.NewString(), Username: "bm", Role: domain.RoleBranchManager, IsActive: true}
	suite.areaManager = domain.StaffUser{UserID: uuid.NewString(), Username: "am", Role: domain.RoleAreaManager, IsActive: true}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.fieldOfficer.UserID).Return(&suite.fieldOfficer, nil)
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.branchManager.UserID).Return(&suite.branchManager, nil)
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.areaManager.UserID).Return(&suite.areaManager, nil)
}

func (suite *ApprovalServiceTestSuite) newLoan(status domain.LoanStatus, principal int64) *domain.Loan {
	return &domain.Loan{
		LoanID:          uuid.NewString(),
		MemberID:        uuid.NewString(),
		CenterID:        uuid.NewString(),
		PrincipalAmount: decimal.NewFromInt(principal),
		MonthlyRate:     decimal.NewFromInt(2),
		TermWeeks:       20,
		Status:          status,
	}
}

func (suite *ApprovalServiceTestSuite) TestSubmit_FieldOfficer_MovesToPendingBranchManager() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusDraft, 15000)

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanStatusPendingBranchMgr &&
			l.FieldOfficerID != nil && *l.FieldOfficerID == suite.fieldOfficer.UserID &&
			l.ApprovalDate == nil
	})).Return(nil).Once()
	suite.mockLoanRepo.On("AppendApprovalRecord", mock.Anything, mock.MatchedBy(func(r domain.LoanApprovalRecord) bool {
		return r.LoanID == loan.LoanID &&
			r.ApproverRole == domain.RoleFieldOfficer &&
			r.FromStatus == domain.LoanStatusDraft &&
			r.ToStatus == domain.LoanStatusPendingBranchMgr
	})).Return(nil).Once()

	updated, err := suite.service.DecideLoan(ctx, suite.fieldOfficer.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().NoError(err)
	suite.Equal(domain.LoanStatusPendingBranchMgr, updated.Status)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_BranchManagerWithinCeiling() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusPendingBranchMgr, 20000)

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanStatusApproved &&
			l.BranchManagerID != nil && *l.BranchManagerID == suite.branchManager.UserID &&
			l.ApprovalDate != nil
	})).Return(nil).Once()
	suite.mockLoanRepo.On("AppendApprovalRecord", mock.Anything, mock.AnythingOfType("domain.LoanApprovalRecord")).Return(nil).Once()

	updated, err := suite.service.DecideLoan(ctx, suite.branchManager.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().NoError(err)
	suite.Equal(domain.LoanStatusApproved, updated.Status)
	suite.NotNil(updated.ApprovalDate)

	success := suite.audit.byAction("loan_decision_approve")
	suite.Require().Len(success, 1)
	suite.True(success[0].Success)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_BranchManagerAboveCeiling_DeniedNonEvent() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusPendingBranchMgr, 25000)

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()

	updated, err := suite.service.DecideLoan(ctx, suite.branchManager.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(updated)

	// Denied authority is a non-event: no loan update, no approval record,
	// only a failed audit entry.
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "UpdateLoan", mock.Anything, mock.Anything)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "AppendApprovalRecord", mock.Anything, mock.Anything)
	failed := suite.audit.byAction("loan_decision_approve")
	suite.Require().Len(failed, 1)
	suite.False(failed[0].Success)
}

func (suite *ApprovalServiceTestSuite) TestApprove_TerminalState_Conflict() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusApproved, 15000)

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()

	_, err := suite.service.DecideLoan(ctx, suite.areaManager.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "UpdateLoan", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprove_UnknownLoan_NotFound() {
	ctx := context.Background()
	loanID := uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loanID).Return(nil, apperrors.NewNotFoundError("loan not found")).Once()

	_, err := suite.service.DecideLoan(ctx, suite.areaManager.UserID, loanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ApprovalServiceTestSuite) TestReject_AreaManager() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusPendingAreaMgr, 30000)

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanStatusRejected && l.ApprovalDate == nil
	})).Return(nil).Once()
	suite.mockLoanRepo.On("AppendApprovalRecord", mock.Anything, mock.MatchedBy(func(r domain.LoanApprovalRecord) bool {
		return r.Action == domain.ApprovalActionReject && r.ToStatus == domain.LoanStatusRejected
	})).Return(nil).Once()

	updated, err := suite.service.DecideLoan(ctx, suite.areaManager.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionReject, Comment: "insufficient capacity"})

	suite.Require().NoError(err)
	suite.Equal(domain.LoanStatusRejected, updated.Status)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestRequestRevision_KeepsAttribution() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusPendingBranchMgr, 15000)
	originalOfficer := uuid.NewString()
	loan.FieldOfficerID = &originalOfficer

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.Status == domain.LoanStatusDraft &&
			l.FieldOfficerID != nil && *l.FieldOfficerID == originalOfficer &&
			l.BranchManagerID != nil && *l.BranchManagerID == suite.branchManager.UserID
	})).Return(nil).Once()
	suite.mockLoanRepo.On("AppendApprovalRecord", mock.Anything, mock.AnythingOfType("domain.LoanApprovalRecord")).Return(nil).Once()

	updated, err := suite.service.DecideLoan(ctx, suite.branchManager.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionRequestRevision, Comment: "amount unclear"})

	suite.Require().NoError(err)
	suite.Equal(domain.LoanStatusDraft, updated.Status)
	suite.Equal(originalOfficer, *updated.FieldOfficerID)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestResubmit_WriteOnceFieldOfficerID() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusDraft, 15000)
	originalOfficer := uuid.NewString()
	loan.FieldOfficerID = &originalOfficer

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		// A different officer resubmitting must not overwrite the original.
		return l.FieldOfficerID != nil && *l.FieldOfficerID == originalOfficer
	})).Return(nil).Once()
	suite.mockLoanRepo.On("AppendApprovalRecord", mock.Anything, mock.AnythingOfType("domain.LoanApprovalRecord")).Return(nil).Once()

	_, err := suite.service.DecideLoan(ctx, suite.fieldOfficer.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestDecide_UnknownActor_Forbidden() {
	ctx := context.Background()
	ghostID := uuid.NewString()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, ghostID).Return(nil, apperrors.NewNotFoundError("user not found")).Once()

	_, err := suite.service.DecideLoan(ctx, ghostID, uuid.NewString(), dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "FindLoanByIDForUpdate", mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprovalDate_WriteOnce() {
	ctx := context.Background()
	loan := suite.newLoan(domain.LoanStatusPendingAreaMgr, 30000)
	earlier := time.Now().UTC().Add(-48 * time.Hour)
	loan.ApprovalDate = &earlier

	suite.mockLoanRepo.On("FindLoanByIDForUpdate", mock.Anything, loan.LoanID).Return(loan, nil).Once()
	suite.mockLoanRepo.On("UpdateLoan", mock.Anything, mock.MatchedBy(func(l domain.Loan) bool {
		return l.ApprovalDate != nil && l.ApprovalDate.Equal(earlier)
	})).Return(nil).Once()
	suite.mockLoanRepo.On("AppendApprovalRecord", mock.Anything, mock.AnythingOfType("domain.LoanApprovalRecord")).Return(nil).Once()

	_, err := suite.service.DecideLoan(ctx, suite.areaManager.UserID, loan.LoanID, dto.ApprovalDecisionRequest{Action: domain.ApprovalActionApprove})

	suite.Require().NoError(err)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
