package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
)

// BaseService carries the cross-cutting dependencies every service needs:
// the immutable permission table and the staff user store. Roles are always
// resolved from the store, never trusted from token claims.
type BaseService struct {
	perms    *domain.PermissionTable
	userRepo portsrepo.UserRepositoryFacade
}

// NewBaseService creates the shared service base.
func NewBaseService(perms *domain.PermissionTable, userRepo portsrepo.UserRepositoryFacade) BaseService {
	return BaseService{perms: perms, userRepo: userRepo}
}

// RequireActor resolves the acting staff user. Missing, unknown, or
// deactivated actors fail closed with ErrForbidden.
func (s *BaseService) RequireActor(ctx context.Context, actorID string) (*domain.StaffUser, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: unauthenticated caller", apperrors.ErrForbidden)
	}
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown actor %s", apperrors.ErrForbidden, actorID)
		}
		return nil, err
	}
	if !actor.IsActive || actor.DeletedAt != nil {
		return nil, fmt.Errorf("%w: actor %s is deactivated", apperrors.ErrForbidden, actorID)
	}
	return actor, nil
}

// Authorize resolves the actor and checks the permission table for the
// resource/action pair, failing closed with ErrForbidden.
func (s *BaseService) Authorize(ctx context.Context, actorID string, resource domain.Resource, action domain.Action) (*domain.StaffUser, error) {
	actor, err := s.RequireActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !s.perms.HasPermission(actor.Role, resource, action) {
		return nil, fmt.Errorf("%w: role %s may not %s %s", apperrors.ErrForbidden, actor.Role, action, resource)
	}
	return actor, nil
}

// Permissions exposes the table for checks beyond resource/action pairs
// (loan amount ceilings).
func (s *BaseService) Permissions() *domain.PermissionTable {
	return s.perms
}
