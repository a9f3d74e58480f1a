package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollectionSheetStatus is the verification state of a collection sheet.
type CollectionSheetStatus string

const (
	SheetStatusDraft    CollectionSheetStatus = "draft"
	SheetStatusVerified CollectionSheetStatus = "verified"
)

// CollectionEntry is one member's line on a collection sheet. Absent members
// are still recorded with zero amounts for accountability.
type CollectionEntry struct {
	EntryID          string          `json:"entryID"`
	SheetID          string          `json:"sheetID"`
	MemberID         string          `json:"memberID"`
	LoanID           *string         `json:"loanID,omitempty"`
	IsPresent        bool            `json:"isPresent"`
	LoanPayment      decimal.Decimal `json:"loanPayment"`
	CBUPayment       decimal.Decimal `json:"cbuPayment"`
	InsurancePayment decimal.Decimal `json:"insurancePayment"`
	Notes            string          `json:"notes,omitempty"`
}

// CollectionSheet is the record of one center's weekly collection event.
// Aggregate totals are always the exact sum of the constituent entries and
// are never mutated independently. A verified sheet is immutable.
type CollectionSheet struct {
	SheetID         string                `json:"sheetID"`
	CenterID        string                `json:"centerID"`
	CollectionDate  time.Time             `json:"collectionDate"`
	ExpectedMembers int                   `json:"expectedMembers"`
	PresentMembers  int                   `json:"presentMembers"`
	TotalLoan       decimal.Decimal       `json:"totalLoan"`
	TotalCBU        decimal.Decimal       `json:"totalCBU"`
	TotalInsurance  decimal.Decimal       `json:"totalInsurance"`
	TotalCollected  decimal.Decimal       `json:"totalCollected"` // loan + CBU; insurance reported separately
	Status          CollectionSheetStatus `json:"status"`
	VerifiedBy      *string               `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time            `json:"verifiedAt,omitempty"`
	Entries         []CollectionEntry     `json:"entries,omitempty"`
	AuditFields
}
