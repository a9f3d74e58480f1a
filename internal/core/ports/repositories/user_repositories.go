package repositories

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// UserRepositoryFacade handles staff account records.
type UserRepositoryFacade interface {
	FindUserByID(ctx context.Context, userID string) (*domain.StaffUser, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.StaffUser, error)
	SaveUser(ctx context.Context, user domain.StaffUser) error
	UpdateUser(ctx context.Context, user domain.StaffUser) error
}
