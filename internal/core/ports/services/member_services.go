package services

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
)

// MemberSvcFacade manages borrower enrollment within centers.
type MemberSvcFacade interface {
	CreateMember(ctx context.Context, actorID string, req dto.CreateMemberRequest) (*domain.Member, error)
	GetMember(ctx context.Context, actorID, memberID string) (*domain.Member, error)
	ListMembersByCenter(ctx context.Context, actorID, centerID string) ([]domain.Member, error)
}

// CenterSvcFacade manages community centers.
type CenterSvcFacade interface {
	CreateCenter(ctx context.Context, actorID string, req dto.CreateCenterRequest) (*domain.Center, error)
	GetCenter(ctx context.Context, actorID, centerID string) (*domain.Center, error)
	ListCenters(ctx context.Context, actorID string, limit, offset int) ([]domain.Center, error)
}
