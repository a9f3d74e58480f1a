package mapping

import (
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
)

// ToModelMember converts a domain Member to a model Member
func ToModelMember(d domain.Member) models.Member {
	return models.Member{
		MemberID:    d.MemberID,
		CenterID:    d.CenterID,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Phone:       d.Phone,
		CBUBalance:  d.CBUBalance,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:    m.MemberID,
		CenterID:    m.CenterID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Phone:       m.Phone,
		CBUBalance:  m.CBUBalance,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMemberSlice converts model members to domain
func ToDomainMemberSlice(ms []models.Member) []domain.Member {
	ds := make([]domain.Member, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMember(m)
	}
	return ds
}

// ToModelCenter converts a domain Center to a model Center
func ToModelCenter(d domain.Center) models.Center {
	return models.Center{
		CenterID:    d.CenterID,
		Name:        d.Name,
		Barangay:    d.Barangay,
		MeetingDay:  d.MeetingDay,
		OfficerID:   d.OfficerID,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCenter converts a model Center to a domain Center
func ToDomainCenter(m models.Center) domain.Center {
	return domain.Center{
		CenterID:    m.CenterID,
		Name:        m.Name,
		Barangay:    m.Barangay,
		MeetingDay:  m.MeetingDay,
		OfficerID:   m.OfficerID,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCenterSlice converts model centers to domain
func ToDomainCenterSlice(ms []models.Center) []domain.Center {
	ds := make([]domain.Center, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCenter(m)
	}
	return ds
}
