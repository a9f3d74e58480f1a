package models

import "github.com/shopspring/decimal"

// Center is the centers table row.
type Center struct {
	CenterID   string `db:"center_id"`
	Name       string `db:"name"`
	Barangay   string `db:"barangay"`
	MeetingDay string `db:"meeting_day"`
	OfficerID  string `db:"officer_id"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// Member is the members table row.
type Member struct {
	MemberID   string          `db:"member_id"`
	CenterID   string          `db:"center_id"`
	FirstName  string          `db:"first_name"`
	LastName   string          `db:"last_name"`
	Phone      string          `db:"phone"`
	CBUBalance decimal.Decimal `db:"cbu_balance"`
	IsActive   bool            `db:"is_active"`
	AuditFields
}
