package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CollectionSheet is the collection_sheets table row.
type CollectionSheet struct {
	SheetID         string          `db:"sheet_id"`
	CenterID        string          `db:"center_id"`
	CollectionDate  time.Time       `db:"collection_date"`
	ExpectedMembers int             `db:"expected_members"`
	PresentMembers  int             `db:"present_members"`
	TotalLoan       decimal.Decimal `db:"total_loan"`
	TotalCBU        decimal.Decimal `db:"total_cbu"`
	TotalInsurance  decimal.Decimal `db:"total_insurance"`
	TotalCollected  decimal.Decimal `db:"total_collected"`
	Status          string          `db:"status"`
	VerifiedBy      *string         `db:"verified_by"`
	VerifiedAt      *time.Time      `db:"verified_at"`
	AuditFields
}

// CollectionEntry is the collection_entries table row.
type CollectionEntry struct {
	EntryID          string          `db:"entry_id"`
	SheetID          string          `db:"sheet_id"`
	MemberID         string          `db:"member_id"`
	LoanID           *string         `db:"loan_id"`
	IsPresent        bool            `db:"is_present"`
	LoanPayment      decimal.Decimal `db:"loan_payment"`
	CBUPayment       decimal.Decimal `db:"cbu_payment"`
	InsurancePayment decimal.Decimal `db:"insurance_payment"`
	Notes            string          `db:"notes"`
}
