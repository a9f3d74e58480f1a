package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/shopspring/decimal"
)

type memberService struct {
	BaseService
	memberRepo portsrepo.MemberRepositoryFacade
	centerRepo portsrepo.CenterRepositoryFacade
}

// NewMemberService creates the borrower enrollment service.
func NewMemberService(base BaseService, memberRepo portsrepo.MemberRepositoryFacade, centerRepo portsrepo.CenterRepositoryFacade) portssvc.MemberSvcFacade {
	return &memberService{
		BaseService: base,
		memberRepo:  memberRepo,
		centerRepo:  centerRepo,
	}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

func (s *memberService) CreateMember(ctx context.Context, actorID string, req dto.CreateMemberRequest) (*domain.Member, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceMembers, domain.ActionCreate)
	if err != nil {
		return nil, err
	}

	center, err := s.centerRepo.FindCenterByID(ctx, req.CenterID)
	if err != nil {
		return nil, fmt.Errorf("resolving center %s: %w", req.CenterID, err)
	}
	if !center.IsActive {
		return nil, apperrors.NewValidationError("center is not active")
	}

	now := time.Now().UTC()
	member := domain.Member{
		MemberID:   uuid.NewString(),
		CenterID:   req.CenterID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		CBUBalance: decimal.Zero,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		return nil, fmt.Errorf("saving member: %w", err)
	}
	return &member, nil
}

func (s *memberService) GetMember(ctx context.Context, actorID, memberID string) (*domain.Member, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceMembers, domain.ActionView); err != nil {
		return nil, err
	}
	return s.memberRepo.FindMemberByID(ctx, memberID)
}

func (s *memberService) ListMembersByCenter(ctx context.Context, actorID, centerID string) ([]domain.Member, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceMembers, domain.ActionView); err != nil {
		return nil, err
	}
	if _, err := s.centerRepo.FindCenterByID(ctx, centerID); err != nil {
		return nil, err
	}
	return s.memberRepo.FindMembersByCenter(ctx, centerID)
}

type centerService struct {
	BaseService
	centerRepo portsrepo.CenterRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewCenterService creates the center management service.
func NewCenterService(base BaseService, centerRepo portsrepo.CenterRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CenterSvcFacade {
	return &centerService{
		BaseService: base,
		centerRepo:  centerRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.CenterSvcFacade = (*centerService)(nil)

func (s *centerService) CreateCenter(ctx context.Context, actorID string, req dto.CreateCenterRequest) (*domain.Center, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceCenters, domain.ActionCreate)
	if err != nil {
		return nil, err
	}

	officer, err := s.userRepo.FindUserByID(ctx, req.OfficerID)
	if err != nil {
		return nil, fmt.Errorf("resolving officer %s: %w", req.OfficerID, err)
	}
	if !officer.IsActive {
		return nil, apperrors.NewValidationError("assigned officer is not active")
	}
	if officer.Role != domain.RoleFieldOfficer {
		return nil, apperrors.NewValidationError("centers are handled by field officers")
	}

	now := time.Now().UTC()
	center := domain.Center{
		CenterID:   uuid.NewString(),
		Name:       req.Name,
		Barangay:   req.Barangay,
		MeetingDay: req.MeetingDay,
		OfficerID:  req.OfficerID,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.centerRepo.SaveCenter(ctx, center); err != nil {
		return nil, fmt.Errorf("saving center: %w", err)
	}
	return &center, nil
}

func (s *centerService) GetCenter(ctx context.Context, actorID, centerID string) (*domain.Center, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceCenters, domain.ActionView); err != nil {
		return nil, err
	}
	return s.centerRepo.FindCenterByID(ctx, centerID)
}

func (s *centerService) ListCenters(ctx context.Context, actorID string, limit, offset int) ([]domain.Center, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceCenters, domain.ActionView); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.centerRepo.ListCenters(ctx, limit, offset)
}
