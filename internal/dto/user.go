package dto

import (
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest defines the data needed to create a staff account.
type CreateUserRequest struct {
	Username   string      `json:"username" binding:"required,min=3,max=64"`
	Name       string      `json:"name" binding:"required"`
	Password   string      `json:"password" binding:"required,min=8"`
	Role       domain.Role `json:"role" binding:"required,oneof=field_officer branch_manager area_manager admin"`
	BranchName string      `json:"branchName"`
}

// UserResponse mirrors domain.StaffUser without the password hash.
type UserResponse struct {
	UserID     string      `json:"userID"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	BranchName string      `json:"branchName,omitempty"`
	IsActive   bool        `json:"isActive"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// ToUserResponse converts a domain.StaffUser to UserResponse.
func ToUserResponse(u *domain.StaffUser) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.Role,
		BranchName: u.BranchName,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of staff users to response DTOs.
func ToListUserResponse(users []domain.StaffUser) []UserResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return res
}
