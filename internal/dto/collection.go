package dto

import (
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CollectionEntryRequest is one member's line on a submitted collection
// sheet. Amounts must be non-negative; a loan payment requires a loan ID.
type CollectionEntryRequest struct {
	MemberID         string          `json:"memberID" binding:"required"`
	LoanID           *string         `json:"loanID"`
	IsPresent        bool            `json:"isPresent"`
	LoanPayment      decimal.Decimal `json:"loanPayment"`
	CBUPayment       decimal.Decimal `json:"cbuPayment"`
	InsurancePayment decimal.Decimal `json:"insurancePayment"`
	Notes            string          `json:"notes"`
}

// ProcessCollectionRequest submits one center sitting's collections.
type ProcessCollectionRequest struct {
	CenterID       string                   `json:"centerID" binding:"required"`
	CollectionDate time.Time                `json:"collectionDate" binding:"required"`
	Entries        []CollectionEntryRequest `json:"entries" binding:"required,min=1,dive"`
}

// CollectionResultResponse is the outcome summary of a processed batch.
type CollectionResultResponse struct {
	CollectionSheetID string          `json:"collectionSheetID"`
	TotalCollected    decimal.Decimal `json:"totalCollected"`
	PresentMembers    int             `json:"presentMembers"`
}

// CollectionEntryResponse mirrors one persisted sheet entry.
type CollectionEntryResponse struct {
	EntryID          string          `json:"entryID"`
	MemberID         string          `json:"memberID"`
	LoanID           *string         `json:"loanID,omitempty"`
	IsPresent        bool            `json:"isPresent"`
	LoanPayment      decimal.Decimal `json:"loanPayment"`
	CBUPayment       decimal.Decimal `json:"cbuPayment"`
	InsurancePayment decimal.Decimal `json:"insurancePayment"`
	Notes            string          `json:"notes,omitempty"`
}

// CollectionSheetResponse mirrors a collection sheet with its entries.
type CollectionSheetResponse struct {
	SheetID         string                       `json:"sheetID"`
	CenterID        string                       `json:"centerID"`
	CollectionDate  time.Time                    `json:"collectionDate"`
	ExpectedMembers int                          `json:"expectedMembers"`
	PresentMembers  int                          `json:"presentMembers"`
	TotalLoan       decimal.Decimal              `json:"totalLoan"`
	TotalCBU        decimal.Decimal              `json:"totalCBU"`
	TotalInsurance  decimal.Decimal              `json:"totalInsurance"`
	TotalCollected  decimal.Decimal              `json:"totalCollected"`
	Status          domain.CollectionSheetStatus `json:"status"`
	VerifiedBy      *string                      `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time                   `json:"verifiedAt,omitempty"`
	Entries         []CollectionEntryResponse    `json:"entries,omitempty"`
	CreatedAt       time.Time                    `json:"createdAt"`
	CreatedBy       string                       `json:"createdBy"`
}

// ToCollectionSheetResponse converts a domain.CollectionSheet to its DTO.
func ToCollectionSheetResponse(s *domain.CollectionSheet) CollectionSheetResponse {
	entries := make([]CollectionEntryResponse, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = CollectionEntryResponse{
			EntryID:          e.EntryID,
			MemberID:         e.MemberID,
			LoanID:           e.LoanID,
			IsPresent:        e.IsPresent,
			LoanPayment:      e.LoanPayment,
			CBUPayment:       e.CBUPayment,
			InsurancePayment: e.InsurancePayment,
			Notes:            e.Notes,
		}
	}
	return CollectionSheetResponse{
		SheetID:         s.SheetID,
		CenterID:        s.CenterID,
		CollectionDate:  s.CollectionDate,
		ExpectedMembers: s.ExpectedMembers,
		PresentMembers:  s.PresentMembers,
		TotalLoan:       s.TotalLoan,
		TotalCBU:        s.TotalCBU,
		TotalInsurance:  s.TotalInsurance,
		TotalCollected:  s.TotalCollected,
		Status:          s.Status,
		VerifiedBy:      s.VerifiedBy,
		VerifiedAt:      s.VerifiedAt,
		Entries:         entries,
		CreatedAt:       s.CreatedAt,
		CreatedBy:       s.CreatedBy,
	}
}

// ToListCollectionSheetResponse converts sheets without their entries.
func ToListCollectionSheetResponse(sheets []domain.CollectionSheet) []CollectionSheetResponse {
	res := make([]CollectionSheetResponse, len(sheets))
	for i := range sheets {
		s := sheets[i]
		s.Entries = nil
		res[i] = ToCollectionSheetResponse(&s)
	}
	return res
}
