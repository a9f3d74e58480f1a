package dto

import (
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCenterRequest defines the data needed to open a center.
type CreateCenterRequest struct {
	Name       string `json:"name" binding:"required"`
	Barangay   string `json:"barangay" binding:"required"`
	MeetingDay string `json:"meetingDay" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	OfficerID  string `json:"officerID" binding:"required"`
}

// CenterResponse mirrors domain.Center.
type CenterResponse struct {
	CenterID   string    `json:"centerID"`
	Name       string    `json:"name"`
	Barangay   string    `json:"barangay"`
	MeetingDay string    `json:"meetingDay"`
	OfficerID  string    `json:"officerID"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCenterResponse converts a domain.Center to CenterResponse.
func ToCenterResponse(c *domain.Center) CenterResponse {
	return CenterResponse{
		CenterID:   c.CenterID,
		Name:       c.Name,
		Barangay:   c.Barangay,
		MeetingDay: c.MeetingDay,
		OfficerID:  c.OfficerID,
		IsActive:   c.IsActive,
		CreatedAt:  c.CreatedAt,
	}
}

// ToListCenterResponse converts a slice of centers to response DTOs.
func ToListCenterResponse(centers []domain.Center) []CenterResponse {
	res := make([]CenterResponse, len(centers))
	for i := range centers {
		res[i] = ToCenterResponse(&centers[i])
	}
	return res
}

// CreateMemberRequest defines the data needed to enroll a member.
type CreateMemberRequest struct {
	CenterID  string `json:"centerID" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

// MemberResponse mirrors domain.Member.
type MemberResponse struct {
	MemberID   string          `json:"memberID"`
	CenterID   string          `json:"centerID"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Phone      string          `json:"phone,omitempty"`
	CBUBalance decimal.Decimal `json:"cbuBalance"`
	IsActive   bool            `json:"isActive"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToMemberResponse converts a domain.Member to MemberResponse.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:   m.MemberID,
		CenterID:   m.CenterID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Phone:      m.Phone,
		CBUBalance: m.CBUBalance,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
}

// ToListMemberResponse converts a slice of members to response DTOs.
func ToListMemberResponse(members []domain.Member) []MemberResponse {
	res := make([]MemberResponse, len(members))
	for i := range members {
		res[i] = ToMemberResponse(&members[i])
	}
	return res
}
