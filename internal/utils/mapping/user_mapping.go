package mapping

import (
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
)

// ToModelStaffUser converts a domain StaffUser to a model StaffUser
func ToModelStaffUser(d domain.StaffUser) models.StaffUser {
	return models.StaffUser{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		Role:         string(d.Role),
		BranchName:   d.BranchName,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainStaffUser converts a model StaffUser to a domain StaffUser
func ToDomainStaffUser(m models.StaffUser) domain.StaffUser {
	return domain.StaffUser{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		Role:         domain.Role(m.Role),
		BranchName:   m.BranchName,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}

// ToDomainStaffUserSlice converts model staff users to domain
func ToDomainStaffUserSlice(ms []models.StaffUser) []domain.StaffUser {
	ds := make([]domain.StaffUser, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStaffUser(m)
	}
	return ds
}
