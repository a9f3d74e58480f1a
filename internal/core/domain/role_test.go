package domain_test

import (
	"testing"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPermissionTable_CanApproveLoan(t *testing.T) {
	perms := domain.DefaultPermissions()

	tests := []struct {
		name   string
		role   domain.Role
		amount string
		want   bool
	}{
		{"admin any amount", domain.RoleAdmin, "1000000", true},
		{"area manager any amount", domain.RoleAreaManager, "500000", true},
		{"branch manager below ceiling", domain.RoleBranchManager, "15000", true},
		{"branch manager at ceiling is inclusive", domain.RoleBranchManager, "20000", true},
		{"branch manager one centavo over", domain.RoleBranchManager, "20000.01", false},
		{"branch manager far over", domain.RoleBranchManager, "50000", false},
		{"field officer never approves", domain.RoleFieldOfficer, "1", false},
		{"unknown role", domain.Role("auditor"), "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, perms.CanApproveLoan(tt.role, amount))
		})
	}
}

func TestPermissionTable_HasPermission(t *testing.T) {
	perms := domain.DefaultPermissions()

	tests := []struct {
		name     string
		role     domain.Role
		resource domain.Resource
		action   domain.Action
		want     bool
	}{
		{"field officer creates loans", domain.RoleFieldOfficer, domain.ResourceLoans, domain.ActionCreate, true},
		{"field officer submits collections", domain.RoleFieldOfficer, domain.ResourceCollections, domain.ActionCreate, true},
		{"field officer cannot manage users", domain.RoleFieldOfficer, domain.ResourceUsers, domain.ActionCreate, false},
		{"field officer cannot read audit logs", domain.RoleFieldOfficer, domain.ResourceAuditLogs, domain.ActionView, false},
		{"branch manager approves", domain.RoleBranchManager, domain.ResourceApprovals, domain.ActionApprove, true},
		{"branch manager verifies collections", domain.RoleBranchManager, domain.ResourceCollections, domain.ActionEdit, true},
		{"branch manager cannot export reports", domain.RoleBranchManager, domain.ResourceReports, domain.ActionExport, false},
		{"area manager exports reports", domain.RoleAreaManager, domain.ResourceReports, domain.ActionExport, true},
		{"admin deletes anything", domain.RoleAdmin, domain.ResourceSettings, domain.ActionDelete, true},
		{"unknown role gets nothing", domain.Role("ghost"), domain.ResourceLoans, domain.ActionView, false},
		{"unknown action returns false not error", domain.RoleAdmin, domain.ResourceLoans, domain.Action("merge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, perms.HasPermission(tt.role, tt.resource, tt.action))
		})
	}
}

func TestNextStatus(t *testing.T) {
	amt := func(s string) decimal.Decimal {
		d, _ := decimal.NewFromString(s)
		return d
	}

	tests := []struct {
		name   string
		role   domain.Role
		amount decimal.Decimal
		action domain.ApprovalAction
		want   domain.LoanStatus
	}{
		{"field officer submission", domain.RoleFieldOfficer, amt("15000"), domain.ApprovalActionApprove, domain.LoanStatusPendingBranchMgr},
		{"branch manager within ceiling approves", domain.RoleBranchManager, amt("15000"), domain.ApprovalActionApprove, domain.LoanStatusApproved},
		{"branch manager at ceiling approves", domain.RoleBranchManager, amt("20000"), domain.ApprovalActionApprove, domain.LoanStatusApproved},
		{"branch manager above ceiling escalates", domain.RoleBranchManager, amt("25000"), domain.ApprovalActionApprove, domain.LoanStatusPendingAreaMgr},
		{"area manager approves", domain.RoleAreaManager, amt("25000"), domain.ApprovalActionApprove, domain.LoanStatusApproved},
		{"admin approves", domain.RoleAdmin, amt("100000"), domain.ApprovalActionApprove, domain.LoanStatusApproved},
		{"reject is unconditional", domain.RoleBranchManager, amt("15000"), domain.ApprovalActionReject, domain.LoanStatusRejected},
		{"revision resets to draft", domain.RoleAreaManager, amt("25000"), domain.ApprovalActionRequestRevision, domain.LoanStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NextStatus(tt.role, tt.amount, tt.action))
		})
	}
}

func TestLoanStatus_MovesForwardFrom(t *testing.T) {
	assert.True(t, domain.LoanStatusPendingBranchMgr.MovesForwardFrom(domain.LoanStatusDraft))
	assert.True(t, domain.LoanStatusApproved.MovesForwardFrom(domain.LoanStatusPendingAreaMgr))
	assert.True(t, domain.LoanStatusDraft.MovesForwardFrom(domain.LoanStatusPendingAreaMgr), "revision reset is always allowed")
	assert.True(t, domain.LoanStatusRejected.MovesForwardFrom(domain.LoanStatusPendingBranchMgr))

	// A submission outcome must never regress an escalated loan.
	assert.False(t, domain.LoanStatusPendingBranchMgr.MovesForwardFrom(domain.LoanStatusPendingAreaMgr))
	assert.False(t, domain.LoanStatusPendingBranchMgr.MovesForwardFrom(domain.LoanStatusPendingBranchMgr))
}
