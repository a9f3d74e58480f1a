package domain

import "github.com/shopspring/decimal"

// Center is a community group of borrowers meeting weekly. Collections are
// batched per center per meeting date.
type Center struct {
	CenterID    string `json:"centerID"`
	Name        string `json:"name"`
	Barangay    string `json:"barangay"`
	MeetingDay  string `json:"meetingDay"` // e.g. "monday"
	OfficerID   string `json:"officerID"`  // field officer handling the center
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// Member is a borrower enrolled in a center. CBUBalance is the accumulated
// capital build-up savings, mutated only by the collection processor.
type Member struct {
	MemberID   string          `json:"memberID"`
	CenterID   string          `json:"centerID"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Phone      string          `json:"phone,omitempty"`
	CBUBalance decimal.Decimal `json:"cbuBalance"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
