package services

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
)

// UserSvcFacade manages staff accounts and credential checks.
type UserSvcFacade interface {
	// Authenticate verifies username/password and returns the staff user.
	Authenticate(ctx context.Context, username, password string) (*domain.StaffUser, error)

	CreateUser(ctx context.Context, actorID string, req dto.CreateUserRequest) (*domain.StaffUser, error)
	GetUser(ctx context.Context, actorID, userID string) (*domain.StaffUser, error)
	ListUsers(ctx context.Context, actorID string, limit, offset int) ([]domain.StaffUser, error)
	DeactivateUser(ctx context.Context, actorID, userID string) error
}
