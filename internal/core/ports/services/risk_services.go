package services

import (
	"context"
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// RiskSvcFacade computes portfolio-at-risk reports. Pure reads; PAR
// snapshots are derived on demand and never persisted.
type RiskSvcFacade interface {
	PortfolioAtRisk(ctx context.Context, actorID string, asOf time.Time) (*domain.PARReport, error)
}
