package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverdueExposure is one unsettled schedule entry annotated with the owning
// loan, as read for PAR reporting. DaysOverdue is relative to the report's
// as-of date.
type OverdueExposure struct {
	LoanID       string          `json:"loanID"`
	CenterID     string          `json:"centerID"`
	DueDate      time.Time       `json:"dueDate"`
	PrincipalDue decimal.Decimal `json:"principalDue"`
	InterestDue  decimal.Decimal `json:"interestDue"`
}

// PARBucket accumulates overdue exposure for one aging range. Buckets
// partition the overdue set: each entry lands in exactly one bucket.
type PARBucket struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// PARReport is a point-in-time portfolio-at-risk snapshot. It is derived
// data and is never persisted.
type PARReport struct {
	AsOf           time.Time       `json:"asOf"`
	Buckets        []PARBucket     `json:"buckets"`
	TotalPAR       decimal.Decimal `json:"totalPAR"`
	TotalPortfolio decimal.Decimal `json:"totalPortfolio"`
	PARRate        decimal.Decimal `json:"parRate"` // percent, 2dp
}
