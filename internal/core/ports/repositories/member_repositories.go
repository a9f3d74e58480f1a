package repositories

import (
	"context"
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MemberRepositoryFacade handles borrower records.
type MemberRepositoryFacade interface {
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
	FindMembersByCenter(ctx context.Context, centerID string) ([]domain.Member, error)
	SaveMember(ctx context.Context, member domain.Member) error
	UpdateMember(ctx context.Context, member domain.Member) error

	// AddToCBUBalance increments a member's capital build-up savings.
	AddToCBUBalance(ctx context.Context, memberID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

// CenterRepositoryFacade handles center records.
type CenterRepositoryFacade interface {
	FindCenterByID(ctx context.Context, centerID string) (*domain.Center, error)
	ListCenters(ctx context.Context, limit, offset int) ([]domain.Center, error)
	SaveCenter(ctx context.Context, center domain.Center) error
	UpdateCenter(ctx context.Context, center domain.Center) error
}
