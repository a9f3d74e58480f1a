package models

import "time"

// StaffUser is the users table row.
type StaffUser struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	BranchName   string `db:"branch_name"`
	PasswordHash string `db:"password_hash"`
	IsActive     bool   `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
