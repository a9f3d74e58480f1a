package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/utils"
	"github.com/shopspring/decimal"
)

// parBucketBounds are the upper day bounds of the aging buckets; the last
// bucket is open-ended.
var parBucketBounds = [...]struct {
	label string
	upTo  int
}{
	{"1-30", 30},
	{"31-60", 60},
	{"61-90", 90},
	{"90+", 1<<31 - 1},
}

// BucketOverdue partitions overdue exposures into aging buckets by days
// overdue as of a date. Each exposure lands in exactly one bucket; bucket
// amounts are the sum of principal plus interest due. Buckets are returned
// in aging order including empty ones, so report shape is stable.
func BucketOverdue(exposures []domain.OverdueExposure, asOf time.Time) []domain.PARBucket {
	buckets := make([]domain.PARBucket, len(parBucketBounds))
	for i, b := range parBucketBounds {
		buckets[i] = domain.PARBucket{Label: b.label, Amount: decimal.Zero}
	}

	for _, e := range exposures {
		days := int(asOf.Sub(e.DueDate).Hours() / 24)
		if days < 1 {
			days = 1
		}
		for i, b := range parBucketBounds {
			if days <= b.upTo {
				buckets[i].Amount = buckets[i].Amount.Add(e.PrincipalDue.Add(e.InterestDue))
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

type riskService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewRiskService creates the portfolio-at-risk reporting service.
func NewRiskService(base BaseService, reportingRepo portsrepo.ReportingRepository) portssvc.RiskSvcFacade {
	return &riskService{
		BaseService:   base,
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.RiskSvcFacade = (*riskService)(nil)

// PortfolioAtRisk derives a point-in-time PAR snapshot. The rate is the
// overdue exposure over the total outstanding portfolio, as a percentage
// rounded to two places; an empty portfolio reports a zero rate rather
// than dividing by zero.
func (s *riskService) PortfolioAtRisk(ctx context.Context, actorID string, asOf time.Time) (*domain.PARReport, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceReports, domain.ActionView); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	exposures, err := s.reportingRepo.GetOverdueExposure(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("loading overdue exposure: %w", err)
	}
	totalPortfolio, err := s.reportingRepo.GetTotalOutstanding(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading total outstanding: %w", err)
	}

	buckets := BucketOverdue(exposures, asOf)
	totalPAR := decimal.Zero
	for _, b := range buckets {
		totalPAR = totalPAR.Add(b.Amount)
	}

	parRate := decimal.Zero
	if totalPortfolio.IsPositive() {
		parRate = utils.RoundCentavos(totalPAR.Div(totalPortfolio).Mul(oneHundred))
	}

	return &domain.PARReport{
		AsOf:           asOf,
		Buckets:        buckets,
		TotalPAR:       totalPAR,
		TotalPortfolio: totalPortfolio,
		PARRate:        parRate,
	}, nil
}
