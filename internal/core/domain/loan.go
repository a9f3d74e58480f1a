package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan. The string values are a
// stable wire contract shared with the admin console and mobile app.
type LoanStatus string

const (
	LoanStatusDraft            LoanStatus = "draft"
	LoanStatusPendingBranchMgr LoanStatus = "pending_branch_manager"
	LoanStatusPendingAreaMgr   LoanStatus = "pending_area_manager"
	LoanStatusApproved         LoanStatus = "approved"
	LoanStatusRejected         LoanStatus = "rejected"
	LoanStatusDisbursed        LoanStatus = "disbursed"
	LoanStatusActive           LoanStatus = "active"
	LoanStatusCompleted        LoanStatus = "completed"
)

// IsTerminalApproval reports whether the status ends the approval workflow.
// Further approval actions on a loan in one of these states are conflicts.
func (s LoanStatus) IsTerminalApproval() bool {
	switch s {
	case LoanStatusApproved, LoanStatusRejected,
		LoanStatusDisbursed, LoanStatusActive, LoanStatusCompleted:
		return true
	}
	return false
}

// approvalRank orders the forward path of the approval workflow. Statuses
// outside the workflow rank as terminal.
func (s LoanStatus) approvalRank() int {
	switch s {
	case LoanStatusDraft:
		return 0
	case LoanStatusPendingBranchMgr:
		return 1
	case LoanStatusPendingAreaMgr:
		return 2
	default:
		return 3
	}
}

// MovesForwardFrom reports whether transitioning from to s only advances
// along the approval path. Rejection and revision resets are always allowed;
// an approve outcome must strictly increase the tier so a loan never
// regresses to an earlier pending state.
func (s LoanStatus) MovesForwardFrom(from LoanStatus) bool {
	if s == LoanStatusRejected || s == LoanStatusDraft {
		return true
	}
	return s.approvalRank() > from.approvalRank()
}

// ApprovalAction is a decision taken on a loan in the approval workflow.
type ApprovalAction string

const (
	ApprovalActionApprove         ApprovalAction = "approve"
	ApprovalActionReject          ApprovalAction = "reject"
	ApprovalActionRequestRevision ApprovalAction = "request_revision"
)

// ValidApprovalAction reports whether a is a defined approval action.
func ValidApprovalAction(a ApprovalAction) bool {
	switch a {
	case ApprovalActionApprove, ApprovalActionReject, ApprovalActionRequestRevision:
		return true
	}
	return false
}

// NextStatus is the approval workflow transition function. It is total over
// valid (role, action) pairs and has no side effects; callers are
// responsible for the authority guard and for terminal-state checks.
//
// A field officer's "approve" is a submission to the branch manager. A
// branch manager approves outright within their ceiling and escalates above
// it. Area managers and admins approve outright.
func NextStatus(role Role, principalAmount decimal.Decimal, action ApprovalAction) LoanStatus {
	switch action {
	case ApprovalActionReject:
		return LoanStatusRejected
	case ApprovalActionRequestRevision:
		return LoanStatusDraft
	}

	switch role {
	case RoleFieldOfficer:
		return LoanStatusPendingBranchMgr
	case RoleBranchManager:
		if principalAmount.LessThanOrEqual(BranchManagerApprovalCeiling) {
			return LoanStatusApproved
		}
		return LoanStatusPendingAreaMgr
	default: // area manager, admin
		return LoanStatusApproved
	}
}

// Loan is a member's loan within a center. Amounts are decimal PHP.
//
// Approver attribution fields are write-once: each is stamped the first time
// the corresponding tier acts on the loan and never overwritten, even if the
// loan is later sent back to draft for revision.
type Loan struct {
	LoanID          string          `json:"loanID"`
	MemberID        string          `json:"memberID"`
	CenterID        string          `json:"centerID"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	MonthlyRate     decimal.Decimal `json:"monthlyRate"` // percent, e.g. 2 for 2%/month
	TermWeeks       int             `json:"termWeeks"`
	Purpose         string          `json:"purpose"`
	Status          LoanStatus      `json:"status"`

	TotalInterest      decimal.Decimal `json:"totalInterest"`
	CBUAmount          decimal.Decimal `json:"cbuAmount"` // one-time capital build-up set-aside
	WeeklyPayment      decimal.Decimal `json:"weeklyPayment"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`

	FieldOfficerID  *string    `json:"fieldOfficerID,omitempty"`
	BranchManagerID *string    `json:"branchManagerID,omitempty"`
	AreaManagerID   *string    `json:"areaManagerID,omitempty"`
	ApprovalDate    *time.Time `json:"approvalDate,omitempty"`
	DisbursedAt     *time.Time `json:"disbursedAt,omitempty"`

	AuditFields
}

// LoanApprovalRecord is an immutable audit row appended for every executed
// approval-workflow transition, including rejections and revision requests.
// Permission-denied attempts are non-events and write no record.
type LoanApprovalRecord struct {
	RecordID     string         `json:"recordID"`
	LoanID       string         `json:"loanID"`
	ApproverID   string         `json:"approverID"`
	ApproverRole Role           `json:"approverRole"`
	Action       ApprovalAction `json:"action"`
	FromStatus   LoanStatus     `json:"fromStatus"`
	ToStatus     LoanStatus     `json:"toStatus"`
	Comment      string         `json:"comment,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
