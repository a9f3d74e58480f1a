package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	audit    portssvc.AuditPublisher
}

// NewUserService creates the staff account service.
func NewUserService(base BaseService, userRepo portsrepo.UserRepositoryFacade, audit portssvc.AuditPublisher) portssvc.UserSvcFacade {
	return &userService{
		BaseService: base,
		userRepo:    userRepo,
		audit:       audit,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Authenticate verifies staff credentials. Unknown users, bad passwords,
// and deactivated accounts all fail with the same forbidden error so the
// response does not reveal which usernames exist.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.StaffUser, error) {
	invalid := fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, invalid
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.audit.Publish(domain.AuditEntry{
			UserID:       user.UserID,
			Action:       "login",
			ResourceType: "user",
			ResourceID:   user.UserID,
			Success:      false,
			ErrorMessage: "password mismatch",
		})
		return nil, invalid
	}

	s.audit.Publish(domain.AuditEntry{
		UserID:       user.UserID,
		Action:       "login",
		ResourceType: "user",
		ResourceID:   user.UserID,
		Success:      true,
	})
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, actorID string, req dto.CreateUserRequest) (*domain.StaffUser, error) {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceUsers, domain.ActionCreate)
	if err != nil {
		return nil, err
	}
	if !domain.ValidRole(req.Role) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", req.Role))
	}

	if existing, err := s.userRepo.FindUserByUsername(ctx, req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, req.Username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.StaffUser{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Role:         req.Role,
		BranchName:   req.BranchName,
		PasswordHash: hash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}

	s.audit.Publish(domain.AuditEntry{
		UserID:       actor.UserID,
		Action:       "user_created",
		ResourceType: "user",
		ResourceID:   user.UserID,
		NewValues:    fmt.Sprintf(`{"username":%q,"role":%q}`, user.Username, user.Role),
		Success:      true,
	})
	return &user, nil
}

// GetUser returns a staff account. Users may always read their own account;
// reading others requires the users view permission.
func (s *userService) GetUser(ctx context.Context, actorID, userID string) (*domain.StaffUser, error) {
	if actorID == userID {
		return s.RequireActor(ctx, actorID)
	}
	if _, err := s.Authorize(ctx, actorID, domain.ResourceUsers, domain.ActionView); err != nil {
		return nil, err
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, actorID string, limit, offset int) ([]domain.StaffUser, error) {
	if _, err := s.Authorize(ctx, actorID, domain.ResourceUsers, domain.ActionView); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// DeactivateUser soft deletes a staff account. Deactivated users fail every
// subsequent permission check.
func (s *userService) DeactivateUser(ctx context.Context, actorID, userID string) error {
	actor, err := s.Authorize(ctx, actorID, domain.ResourceUsers, domain.ActionDelete)
	if err != nil {
		return err
	}
	if actorID == userID {
		return apperrors.NewValidationError("cannot deactivate your own account")
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.IsActive = false
	user.DeletedAt = &now
	user.LastUpdatedAt = now
	user.LastUpdatedBy = actor.UserID
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return fmt.Errorf("deactivating user %s: %w", userID, err)
	}

	s.audit.Publish(domain.AuditEntry{
		UserID:       actor.UserID,
		Action:       "user_deactivated",
		ResourceType: "user",
		ResourceID:   userID,
		Success:      true,
	})
	return nil
}
