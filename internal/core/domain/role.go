package domain

import "github.com/shopspring/decimal"

// Role is the staff tier performing an operation. Tiers are ordered by
// approval authority but are not a strict hierarchy: each has its own
// amount ceiling.
type Role string

const (
	RoleFieldOfficer  Role = "field_officer"
	RoleBranchManager Role = "branch_manager"
	RoleAreaManager   Role = "area_manager"
	RoleAdmin         Role = "admin"
)

// ValidRole reports whether r is one of the defined staff roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleFieldOfficer, RoleBranchManager, RoleAreaManager, RoleAdmin:
		return true
	}
	return false
}

// Resource is a permission-checked area of the suite.
type Resource string

const (
	ResourceDashboard   Resource = "dashboard"
	ResourceCenters     Resource = "centers"
	ResourceMembers     Resource = "members"
	ResourceLoans       Resource = "loans"
	ResourceCollections Resource = "collections"
	ResourceReports     Resource = "reports"
	ResourceUsers       Resource = "users"
	ResourceSettings    Resource = "settings"
	ResourceAuditLogs   Resource = "audit_logs"
	ResourceApprovals   Resource = "approvals"
)

// Action is an operation on a resource.
type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionExport  Action = "export"
)

// BranchManagerApprovalCeiling is the largest principal a branch manager may
// approve on their own authority, in PHP. The boundary is inclusive.
var BranchManagerApprovalCeiling = decimal.NewFromInt(20000)

type resourceAction struct {
	resource Resource
	action   Action
}

// PermissionTable maps each role to the resource/action pairs it may perform.
// It is built once at process start and never mutated, so it is safe for
// unsynchronized concurrent reads.
type PermissionTable struct {
	grants map[Role]map[resourceAction]struct{}
}

// DefaultPermissions builds the static permission table for the suite.
func DefaultPermissions() *PermissionTable {
	t := &PermissionTable{grants: make(map[Role]map[resourceAction]struct{})}

	grant := func(role Role, resource Resource, actions ...Action) {
		if t.grants[role] == nil {
			t.grants[role] = make(map[resourceAction]struct{})
		}
		for _, a := range actions {
			t.grants[role][resourceAction{resource, a}] = struct{}{}
		}
	}

	// Field officers run center meetings: they originate loans, enroll
	// members, and submit collection sheets. No approvals, no settings.
	grant(RoleFieldOfficer, ResourceDashboard, ActionView)
	grant(RoleFieldOfficer, ResourceCenters, ActionView)
	grant(RoleFieldOfficer, ResourceMembers, ActionView, ActionCreate, ActionEdit)
	grant(RoleFieldOfficer, ResourceLoans, ActionView, ActionCreate, ActionApprove)
	grant(RoleFieldOfficer, ResourceCollections, ActionView, ActionCreate)

	// Branch managers additionally manage centers and verify collections,
	// and approve loans up to their ceiling.
	grant(RoleBranchManager, ResourceDashboard, ActionView)
	grant(RoleBranchManager, ResourceCenters, ActionView, ActionCreate, ActionEdit)
	grant(RoleBranchManager, ResourceMembers, ActionView, ActionCreate, ActionEdit)
	grant(RoleBranchManager, ResourceLoans, ActionView, ActionCreate, ActionEdit, ActionApprove)
	grant(RoleBranchManager, ResourceCollections, ActionView, ActionCreate, ActionEdit)
	grant(RoleBranchManager, ResourceReports, ActionView)
	grant(RoleBranchManager, ResourceApprovals, ActionView, ActionApprove)

	// Area managers see everything operational plus exports.
	grant(RoleAreaManager, ResourceDashboard, ActionView)
	grant(RoleAreaManager, ResourceCenters, ActionView, ActionCreate, ActionEdit)
	grant(RoleAreaManager, ResourceMembers, ActionView, ActionEdit)
	grant(RoleAreaManager, ResourceLoans, ActionView, ActionEdit, ActionApprove)
	grant(RoleAreaManager, ResourceCollections, ActionView)
	grant(RoleAreaManager, ResourceReports, ActionView, ActionExport)
	grant(RoleAreaManager, ResourceApprovals, ActionView, ActionApprove)

	// Admins may do everything on every resource.
	allResources := []Resource{
		ResourceDashboard, ResourceCenters, ResourceMembers, ResourceLoans,
		ResourceCollections, ResourceReports, ResourceUsers, ResourceSettings,
		ResourceAuditLogs, ResourceApprovals,
	}
	allActions := []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionApprove, ActionExport}
	for _, res := range allResources {
		grant(RoleAdmin, res, allActions...)
	}

	return t
}

// HasPermission reports whether role may perform action on resource.
// Unknown role/resource/action combinations return false, never an error.
func (t *PermissionTable) HasPermission(role Role, resource Resource, action Action) bool {
	grants, ok := t.grants[role]
	if !ok {
		return false
	}
	_, ok = grants[resourceAction{resource, action}]
	return ok
}

// CanApproveLoan reports whether role has approval authority for a loan of
// the given principal. Admins and area managers are unbounded; branch
// managers are capped at the ceiling (inclusive); field officers can only
// submit, never approve.
func (t *PermissionTable) CanApproveLoan(role Role, principalAmount decimal.Decimal) bool {
	switch role {
	case RoleAdmin, RoleAreaManager:
		return true
	case RoleBranchManager:
		return principalAmount.LessThanOrEqual(BranchManagerApprovalCeiling)
	default:
		return false
	}
}
