package dto

import (
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PARBucketResponse is one aging bucket of a PAR report.
type PARBucketResponse struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// PARReportResponse mirrors a portfolio-at-risk snapshot.
type PARReportResponse struct {
	AsOf           time.Time           `json:"asOf"`
	Buckets        []PARBucketResponse `json:"buckets"`
	TotalPAR       decimal.Decimal     `json:"totalPAR"`
	TotalPortfolio decimal.Decimal     `json:"totalPortfolio"`
	PARRate        decimal.Decimal     `json:"parRate"`
}

// ToPARReportResponse converts a domain.PARReport to its DTO.
func ToPARReportResponse(r *domain.PARReport) PARReportResponse {
	buckets := make([]PARBucketResponse, len(r.Buckets))
	for i, b := range r.Buckets {
		buckets[i] = PARBucketResponse{Label: b.Label, Amount: b.Amount, Count: b.Count}
	}
	return PARReportResponse{
		AsOf:           r.AsOf,
		Buckets:        buckets,
		TotalPAR:       r.TotalPAR,
		TotalPortfolio: r.TotalPortfolio,
		PARRate:        r.PARRate,
	}
}

// AuditEntryResponse mirrors one audit trail row.
type AuditEntryResponse struct {
	AuditID      string    `json:"auditID"`
	UserID       string    `json:"userID"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceID"`
	OldValues    string    `json:"oldValues,omitempty"`
	NewValues    string    `json:"newValues,omitempty"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAuditEntryResponses converts audit entries to response DTOs.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = AuditEntryResponse{
			AuditID:      e.AuditID,
			UserID:       e.UserID,
			Action:       e.Action,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			OldValues:    e.OldValues,
			NewValues:    e.NewValues,
			Success:      e.Success,
			ErrorMessage: e.ErrorMessage,
			CreatedAt:    e.CreatedAt,
		}
	}
	return res
}
