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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func overdueEntry(daysOverdue int, amount int64, asOf time.Time) domain.OverdueExposure {
	return domain.OverdueExposure{
		LoanID:       uuid.NewString(),
		CenterID:     uuid.NewString(),
		DueDate:      asOf.AddDate(0, 0, -daysOverdue),
		PrincipalDue: decimal.NewFromInt(amount),
		InterestDue:  decimal.Zero,
	}
}

func TestBucketOverdue_PartitionsByAge(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	exposures := []domain.OverdueExposure{
		overdueEntry(5, 100, asOf),
		overdueEntry(30, 200, asOf),
		overdueEntry(31, 300, asOf),
		overdueEntry(75, 400, asOf),
		overdueEntry(90, 500, asOf),
		overdueEntry(91, 600, asOf),
		overdueEntry(400, 700, asOf),
	}

	buckets := services.BucketOverdue(exposures, asOf)

	require.Len(t, buckets, 4)
	assert.Equal(t, "1-30", buckets[0].Label)
	assert.True(t, buckets[0].Amount.Equal(decimal.NewFromInt(300)), "1-30 = %s", buckets[0].Amount)
	assert.Equal(t, 2, buckets[0].Count)

	assert.Equal(t, "31-60", buckets[1].Label)
	assert.True(t, buckets[1].Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, buckets[1].Count)

	assert.Equal(t, "61-90", buckets[2].Label)
	assert.True(t, buckets[2].Amount.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, 2, buckets[2].Count)

	assert.Equal(t, "90+", buckets[3].Label)
	assert.True(t, buckets[3].Amount.Equal(decimal.NewFromInt(1300)))
	assert.Equal(t, 2, buckets[3].Count)

	// Every exposure lands in exactly one bucket.
	totalCount := 0
	totalAmount := decimal.Zero
	for _, b := range buckets {
		totalCount += b.Count
		totalAmount = totalAmount.Add(b.Amount)
	}
	assert.Equal(t, len(exposures), totalCount)
	assert.True(t, totalAmount.Equal(decimal.NewFromInt(2800)))
}

func TestBucketOverdue_IncludesInterest(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	exposures := []domain.OverdueExposure{{
		DueDate:      asOf.AddDate(0, 0, -10),
		PrincipalDue: decimal.NewFromInt(900),
		InterestDue:  decimal.NewFromInt(100),
	}}

	buckets := services.BucketOverdue(exposures, asOf)

	assert.True(t, buckets[0].Amount.Equal(decimal.NewFromInt(1000)))
}

func TestBucketOverdue_Idempotent(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	exposures := []domain.OverdueExposure{
		overdueEntry(12, 150, asOf),
		overdueEntry(45, 250, asOf),
		overdueEntry(120, 350, asOf),
	}

	first := services.BucketOverdue(exposures, asOf)
	second := services.BucketOverdue(exposures, asOf)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.Equal(t, first[i].Count, second[i].Count)
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
	}
}

func TestBucketOverdue_Empty(t *testing.T) {
	buckets := services.BucketOverdue(nil, time.Now())

	require.Len(t, buckets, 4)
	for _, b := range buckets {
		assert.True(t, b.Amount.IsZero())
		assert.Equal(t, 0, b.Count)
	}
}

func newRiskFixture() (*MockReportingRepository, *MockUserRepository, domain.StaffUser, portssvc.RiskSvcFacade) {
	mockReportingRepo := new(MockReportingRepository)
	mockUserRepo := new(MockUserRepository)
	manager := domain.StaffUser{UserID: uuid.NewString(), Role: domain.RoleAreaManager, IsActive: true}
	mockUserRepo.On("FindUserByID", mock.Anything, manager.UserID).Return(&manager, nil)

	base := services.NewBaseService(domain.DefaultPermissions(), mockUserRepo)
	svc := services.NewRiskService(base, mockReportingRepo)
	return mockReportingRepo, mockUserRepo, manager, svc
}

func TestPortfolioAtRisk_RateAndTotals(t *testing.T) {
	ctx := context.Background()
	mockReportingRepo, _, manager, svc := newRiskFixture()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	exposures := []domain.OverdueExposure{
		overdueEntry(10, 300, asOf),
		overdueEntry(50, 200, asOf),
	}
	mockReportingRepo.On("GetOverdueExposure", mock.Anything, asOf).Return(exposures, nil).Once()
	mockReportingRepo.On("GetTotalOutstanding", mock.Anything).Return(decimal.NewFromInt(10000), nil).Once()

	report, err := svc.PortfolioAtRisk(ctx, manager.UserID, asOf)

	require.NoError(t, err)
	assert.True(t, report.TotalPAR.Equal(decimal.NewFromInt(500)), "totalPAR = %s", report.TotalPAR)
	assert.True(t, report.PARRate.Equal(decimal.NewFromFloat(5)), "parRate = %s", report.PARRate)
	assert.True(t, report.TotalPAR.LessThanOrEqual(report.TotalPortfolio))

	sum := decimal.Zero
	for _, b := range report.Buckets {
		sum = sum.Add(b.Amount)
	}
	assert.True(t, sum.Equal(report.TotalPAR))
}

func TestPortfolioAtRisk_EmptyPortfolio_ZeroRate(t *testing.T) {
	ctx := context.Background()
	mockReportingRepo, _, manager, svc := newRiskFixture()
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mockReportingRepo.On("GetOverdueExposure", mock.Anything, asOf).Return([]domain.OverdueExposure{}, nil).Once()
	mockReportingRepo.On("GetTotalOutstanding", mock.Anything).Return(decimal.Zero, nil).Once()

	report, err := svc.PortfolioAtRisk(ctx, manager.UserID, asOf)

	require.NoError(t, err)
	assert.True(t, report.PARRate.IsZero())
	assert.True(t, report.TotalPAR.IsZero())
}

func TestPortfolioAtRisk_FieldOfficer_Forbidden(t *testing.T) {
	ctx := context.Background()
	mockReportingRepo, mockUserRepo, _, svc := newRiskFixture()

	officer := domain.StaffUser{UserID: uuid.NewString(), Role: domain.RoleFieldOfficer, IsActive: true}
	mockUserRepo.On("FindUserByID", mock.Anything, officer.UserID).Return(&officer, nil)

	_, err := svc.PortfolioAtRisk(ctx, officer.UserID, time.Now())

	require.ErrorIs(t, err, apperrors.ErrForbidden)
	mockReportingRepo.AssertNotCalled(t, "GetOverdueExposure", mock.Anything, mock.Anything)
}
