package repositories

import (
	"context"
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository provides the read-only snapshot data for PAR reporting.
type ReportingRepository interface {
	// GetOverdueExposure retrieves all unsettled schedule entries due before
	// asOf, annotated with the owning loan.
	GetOverdueExposure(ctx context.Context, asOf time.Time) ([]domain.OverdueExposure, error)

	// GetTotalOutstanding sums the outstanding balances of all loans still
	// on the books (disbursed or active; paid-off and rejected excluded).
	GetTotalOutstanding(ctx context.Context) (decimal.Decimal, error)
}
