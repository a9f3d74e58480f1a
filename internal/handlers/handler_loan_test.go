package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/handlers"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, actorID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) GetLoan(ctx context.Context, actorID, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, actorID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, actorID string, params dto.ListLoansParams) ([]domain.Loan, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) GetApprovalTrail(ctx context.Context, actorID, loanID string) ([]domain.LoanApprovalRecord, error) {
	args := m.Called(ctx, actorID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanApprovalRecord), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) DecideLoan(ctx context.Context, actorID, loanID string, req dto.ApprovalDecisionRequest) (*domain.Loan, error) {
	args := m.Called(ctx, actorID, loanID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

// --- Mock ScheduleService ---
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) DisburseLoan(ctx context.Context, actorID, loanID string, req dto.DisburseLoanRequest) (*domain.Loan, []domain.RepaymentScheduleEntry, error) {
	args := m.Called(ctx, actorID, loanID, req)
	var loan *domain.Loan
	if args.Get(0) != nil {
		loan = args.Get(0).(*domain.Loan)
	}
	var entries []domain.RepaymentScheduleEntry
	if args.Get(1) != nil {
		entries = args.Get(1).([]domain.RepaymentScheduleEntry)
	}
	return loan, entries, args.Error(2)
}
func (m *MockScheduleService) GetSchedule(ctx context.Context, actorID, loanID string) ([]domain.RepaymentScheduleEntry, error) {
	args := m.Called(ctx, actorID, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepaymentScheduleEntry), args.Error(1)
}

var _ portssvc.ScheduleSvcFacade = (*MockScheduleService)(nil)

// --- Test Suite ---
type LoanHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockLoanService     *MockLoanService
	mockApprovalService *MockApprovalService
	mockScheduleService *MockScheduleService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *LoanHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "microfin-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tsignedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return tsignedString
}

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLoanService = new(MockLoanService)
	suite.mockApprovalService = new(MockApprovalService)
	suite.mockScheduleService = new(MockScheduleService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterLoanRoutes(v1, suite.mockLoanService, suite.mockApprovalService, suite.mockScheduleService)
}

func (suite *LoanHandlerTestSuite) doJSON(method, url, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LoanHandlerTestSuite) TestCreateLoan_Success() {
	actor := uuid.NewString()
	memberID := uuid.NewString()
	centerID := uuid.NewString()

	reqBody := dto.CreateLoanRequest{
		MemberID:        memberID,
		CenterID:        centerID,
		PrincipalAmount: decimal.NewFromInt(15000),
		MonthlyRate:     decimal.NewFromFloat(2.5),
		TermWeeks:       25,
		Purpose:         "sari-sari store stock",
	}
	created := &domain.Loan{
		LoanID:          uuid.NewString(),
		MemberID:        memberID,
		CenterID:        centerID,
		PrincipalAmount: reqBody.PrincipalAmount,
		MonthlyRate:     reqBody.MonthlyRate,
		TermWeeks:       reqBody.TermWeeks,
		Purpose:         reqBody.Purpose,
		Status:          domain.LoanStatusDraft,
	}

	suite.mockLoanService.On("CreateLoan", mock.Anything, actor, mock.MatchedBy(func(r dto.CreateLoanRequest) bool {
		return r.MemberID == memberID && r.TermWeeks == 25
	})).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/loans", actor, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LoanResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.LoanID, resp.LoanID)
	suite.Equal(domain.LoanStatusDraft, resp.Status)
	suite.True(resp.PrincipalAmount.Equal(decimal.NewFromInt(15000)))
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestCreateLoan_MissingMember_BadRequest() {
	actor := uuid.NewString()
	w := suite.doJSON(http.MethodPost, "/api/v1/loans", actor, gin.H{
		"centerID":        uuid.NewString(),
		"principalAmount": "10000",
		"termWeeks":       20,
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "CreateLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestGetLoan_NotFound() {
	actor := uuid.NewString()
	loanID := uuid.NewString()

	suite.mockLoanService.On("GetLoan", mock.Anything, actor, loanID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/loans/"+loanID, actor, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestDecideLoan_OutsideAuthority_Forbidden() {
	actor := uuid.NewString()
	loanID := uuid.NewString()

	suite.mockApprovalService.On("DecideLoan", mock.Anything, actor, loanID, mock.Anything).
		Return(nil, fmt.Errorf("principal exceeds branch manager ceiling: %w", apperrors.ErrForbidden)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/loans/"+loanID+"/decision", actor, dto.ApprovalDecisionRequest{
		Action: domain.ApprovalActionApprove,
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockApprovalService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestDecideLoan_UnknownAction_BadRequest() {
	actor := uuid.NewString()
	loanID := uuid.NewString()

	w := suite.doJSON(http.MethodPost, "/api/v1/loans/"+loanID+"/decision", actor, gin.H{
		"action": "escalate",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockApprovalService.AssertNotCalled(suite.T(), "DecideLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanHandlerTestSuite) TestDecideLoan_TerminalLoan_Conflict() {
	actor := uuid.NewString()
	loanID := uuid.NewString()

	suite.mockApprovalService.On("DecideLoan", mock.Anything, actor, loanID, mock.Anything).
		Return(nil, fmt.Errorf("loan already decided: %w", apperrors.ErrConflict)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/loans/"+loanID+"/decision", actor, dto.ApprovalDecisionRequest{
		Action: domain.ApprovalActionReject,
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockApprovalService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetSchedule_Success() {
	actor := uuid.NewString()
	loanID := uuid.NewString()
	dueDate := time.Now().UTC().AddDate(0, 0, 7)

	entries := []domain.RepaymentScheduleEntry{
		{
			EntryID:      uuid.NewString(),
			LoanID:       loanID,
			WeekNumber:   1,
			DueDate:      dueDate,
			PrincipalDue: decimal.NewFromInt(600),
			InterestDue:  decimal.NewFromInt(55),
			TotalDue:     decimal.NewFromInt(655),
			Status:       domain.ScheduleStatusPending,
		},
	}
	suite.mockScheduleService.On("GetSchedule", mock.Anything, actor, loanID).
		Return(entries, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/loans/"+loanID+"/schedule", actor, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.ScheduleEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(1, resp[0].WeekNumber)
	suite.Equal(domain.ScheduleStatusPending, resp[0].Status)
	suite.mockScheduleService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetLoan_NoToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/loans/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestLoanHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}
