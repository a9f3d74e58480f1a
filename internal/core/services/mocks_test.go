package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

var _ portsrepo.LoanRepositoryWithTx = (*MockLoanRepository)(nil)

// RunAtomic executes fn inline. Rollback is not simulated; tests assert
// atomicity by checking which writes were (not) issued after a failure.
func (m *MockLoanRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, params portsrepo.ListLoansParams) ([]domain.Loan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) AppendApprovalRecord(ctx context.Context, record domain.LoanApprovalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockLoanRepository) ListApprovalRecordsByLoan(ctx context.Context, loanID string) ([]domain.LoanApprovalRecord, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanApprovalRecord), args.Error(1)
}

// --- Mock ScheduleRepository ---
type MockScheduleRepository struct {
	mock.Mock
}

var _ portsrepo.ScheduleRepositoryFacade = (*MockScheduleRepository)(nil)

func (m *MockScheduleRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.RepaymentScheduleEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepaymentScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) FindUnsettledByLoanIDForUpdate(ctx context.Context, loanID string) ([]domain.RepaymentScheduleEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepaymentScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) SaveScheduleEntries(ctx context.Context, entries []domain.RepaymentScheduleEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockScheduleRepository) MarkEntriesPaid(ctx context.Context, entryIDs []string, paidAt time.Time) error {
	args := m.Called(ctx, entryIDs, paidAt)
	return args.Error(0)
}

// --- Mock CollectionRepository ---
type MockCollectionRepository struct {
	mock.Mock
}

var _ portsrepo.CollectionRepositoryFacade = (*MockCollectionRepository)(nil)

func (m *MockCollectionRepository) FindSheetByID(ctx context.Context, sheetID string) (*domain.CollectionSheet, error) {
	args := m.Called(ctx, sheetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionSheet), args.Error(1)
}

func (m *MockCollectionRepository) FindSheetByCenterAndDate(ctx context.Context, centerID string, date time.Time) (*domain.CollectionSheet, error) {
	args := m.Called(ctx, centerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionSheet), args.Error(1)
}

func (m *MockCollectionRepository) ListSheetsByCenter(ctx context.Context, centerID string, limit, offset int) ([]domain.CollectionSheet, error) {
	args := m.Called(ctx, centerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CollectionSheet), args.Error(1)
}

func (m *MockCollectionRepository) SaveCollectionSheet(ctx context.Context, sheet domain.CollectionSheet) error {
	args := m.Called(ctx, sheet)
	return args.Error(0)
}

func (m *MockCollectionRepository) MarkSheetVerified(ctx context.Context, sheetID, verifierID string, verifiedAt time.Time) error {
	args := m.Called(ctx, sheetID, verifierID, verifiedAt)
	return args.Error(0)
}

// --- Mock MemberRepository ---
type MockMemberRepository struct {
	mock.Mock
}

var _ portsrepo.MemberRepositoryFacade = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) FindMembersByCenter(ctx context.Context, centerID string) ([]domain.Member, error) {
	args := m.Called(ctx, centerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) AddToCBUBalance(ctx context.Context, memberID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, memberID, amount, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock CenterRepository ---
type MockCenterRepository struct {
	mock.Mock
}

var _ portsrepo.CenterRepositoryFacade = (*MockCenterRepository)(nil)

func (m *MockCenterRepository) FindCenterByID(ctx context.Context, centerID string) (*domain.Center, error) {
	args := m.Called(ctx, centerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Center), args.Error(1)
}

func (m *MockCenterRepository) ListCenters(ctx context.Context, limit, offset int) ([]domain.Center, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Center), args.Error(1)
}

func (m *MockCenterRepository) SaveCenter(ctx context.Context, center domain.Center) error {
	args := m.Called(ctx, center)
	return args.Error(0)
}

func (m *MockCenterRepository) UpdateCenter(ctx context.Context, center domain.Center) error {
	args := m.Called(ctx, center)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetOverdueExposure(ctx context.Context, asOf time.Time) ([]domain.OverdueExposure, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverdueExposure), args.Error(1)
}

func (m *MockReportingRepository) GetTotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffUser), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.StaffUser, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffUser), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepository) ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// --- Recording audit publisher ---

// recordingAudit captures published entries synchronously so tests can
// assert on them without racing the real dispatcher goroutine.
type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *recordingAudit) Publish(entry domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingAudit) byAction(action string) []domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuditEntry
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}
