package domain

import "time"

// StaffUser is a staff account of the institution. Role drives every
// permission check; there is no per-user ACL.
type StaffUser struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	BranchName   string `json:"branchName,omitempty"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // soft delete
}
