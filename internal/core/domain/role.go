package domain

// Role is the closed set of principal roles, ordered by privilege level.
type Role string

const (
	RoleNationalAdmin     Role = "NATIONAL_ADMIN"
	RoleNationalTreasurer Role = "NATIONAL_TREASURER"
	RoleFundDirector      Role = "FUND_DIRECTOR"
	RolePastor            Role = "PASTOR"
	RoleTreasurer         Role = "TREASURER"
	RoleChurchManager     Role = "CHURCH_MANAGER"
	RoleSecretary         Role = "SECRETARY"
)

// roleLevels maps each role to its numeric privilege level (higher = more).
var roleLevels = map[Role]int{
	RoleNationalAdmin:     7,
	RoleNationalTreasurer: 6,
	RoleFundDirector:      5,
	RolePastor:            4,
	RoleTreasurer:         3,
	RoleChurchManager:     2,
	RoleSecretary:         1,
}

// Level returns the numeric privilege level of the role, 0 for unknown roles.
func (r Role) Level() int {
	return roleLevels[r]
}

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	_, ok := roleLevels[r]
	return ok
}

// IsNational reports whether the role bypasses church scoping entirely.
func (r Role) IsNational() bool {
	return r == RoleNationalAdmin || r == RoleNationalTreasurer
}

// IsChurchScoped reports whether the role requires a church assignment.
func (r Role) IsChurchScoped() bool {
	switch r {
	case RolePastor, RoleTreasurer, RoleChurchManager, RoleSecretary:
		return true
	}
	return false
}

// Resource identifies a protected resource class.
type Resource string

const (
	ResourceChurch      Resource = "church"
	ResourceFund        Resource = "fund"
	ResourceReport      Resource = "report"
	ResourceTransaction Resource = "transaction"
	ResourceLedger      Resource = "ledger"
	ResourceExpense     Resource = "expense"
	ResourceCategory    Resource = "category"
	ResourceSummary     Resource = "summary"
	ResourceUser        Resource = "user"
)

// Action identifies an operation on a resource.
type Action string

const (
	ActionCreate    Action = "create"
	ActionRead      Action = "read"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionSubmit    Action = "submit"
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionProcess   Action = "process"
	ActionOpen      Action = "open"
	ActionClose     Action = "close"
	ActionReconcile Action = "reconcile"
)

// PermissionScope narrows a granted permission to a subset of records.
type PermissionScope string

const (
	ScopeAll           PermissionScope = "all"
	ScopeAssignedFunds PermissionScope = "assigned_funds"
	ScopeOwnChurch     PermissionScope = "own_church"
)

type permissionKey struct {
	Resource Resource
	Action   Action
}

// permissionMatrix is the declarative role -> (resource, action) -> scope
// mapping. Absence of an entry means the action is denied for the role.
var permissionMatrix = map[Role]map[permissionKey]PermissionScope{
	RoleNationalAdmin: grantAll(ScopeAll),
	RoleNationalTreasurer: {
		{ResourceChurch, ActionRead}:        ScopeAll,
		{ResourceFund, ActionCreate}:        ScopeAll,
		{ResourceFund, ActionRead}:          ScopeAll,
		{ResourceFund, ActionUpdate}:        ScopeAll,
		{ResourceReport, ActionRead}:        ScopeAll,
		{ResourceReport, ActionApprove}:     ScopeAll,
		{ResourceReport, ActionReject}:      ScopeAll,
		{ResourceTransaction, ActionCreate}: ScopeAll,
		{ResourceTransaction, ActionRead}:   ScopeAll,
		{ResourceLedger, ActionRead}:        ScopeAll,
		{ResourceLedger, ActionOpen}:        ScopeAll,
		{ResourceLedger, ActionClose}:       ScopeAll,
		{ResourceLedger, ActionReconcile}:   ScopeAll,
		{ResourceExpense, ActionCreate}:     ScopeAll,
		{ResourceExpense, ActionRead}:       ScopeAll,
		{ResourceCategory, ActionRead}:      ScopeAll,
		{ResourceCategory, ActionCreate}:    ScopeAll,
		{ResourceSummary, ActionRead}:       ScopeAll,
	},
	RoleFundDirector: {
		{ResourceFund, ActionRead}:        ScopeAssignedFunds,
		{ResourceTransaction, ActionRead}: ScopeAssignedFunds,
		{ResourceExpense, ActionCreate}:   ScopeAssignedFunds,
		{ResourceExpense, ActionRead}:     ScopeAssignedFunds,
		{ResourceChurch, ActionRead}:      ScopeAll, // read-only, for event planning
		{ResourceReport, ActionRead}:      ScopeAll, // read-only context
		{ResourceCategory, ActionRead}:    ScopeAll,
		{ResourceSummary, ActionRead}:     ScopeAll, // aggregate context only
	},
	RolePastor: {
		{ResourceChurch, ActionRead}:      ScopeOwnChurch,
		{ResourceReport, ActionCreate}:    ScopeOwnChurch,
		{ResourceReport, ActionRead}:      ScopeOwnChurch,
		{ResourceReport, ActionUpdate}:    ScopeOwnChurch,
		{ResourceReport, ActionSubmit}:    ScopeOwnChurch,
		{ResourceTransaction, ActionRead}: ScopeOwnChurch,
		{ResourceLedger, ActionRead}:      ScopeOwnChurch,
		{ResourceExpense, ActionRead}:     ScopeOwnChurch,
		{ResourceCategory, ActionRead}:    ScopeAll,
		{ResourceSummary, ActionRead}:     ScopeOwnChurch,
	},
	RoleTreasurer: {
		{ResourceChurch, ActionRead}:      ScopeOwnChurch,
		{ResourceReport, ActionCreate}:    ScopeOwnChurch,
		{ResourceReport, ActionRead}:      ScopeOwnChurch,
		{ResourceReport, ActionUpdate}:    ScopeOwnChurch,
		{ResourceReport, ActionSubmit}:    ScopeOwnChurch,
		{ResourceReport, ActionApprove}:   ScopeOwnChurch,
		{ResourceReport, ActionReject}:    ScopeOwnChurch,
		{ResourceTransaction, ActionRead}: ScopeOwnChurch,
		{ResourceLedger, ActionRead}:      ScopeOwnChurch,
		{ResourceLedger, ActionOpen}:      ScopeOwnChurch,
		{ResourceLedger, ActionClose}:     ScopeOwnChurch,
		{ResourceLedger, ActionReconcile}: ScopeOwnChurch,
		{ResourceExpense, ActionCreate}:   ScopeOwnChurch,
		{ResourceExpense, ActionRead}:     ScopeOwnChurch,
		{ResourceCategory, ActionRead}:    ScopeAll,
		{ResourceSummary, ActionRead}:     ScopeOwnChurch,
	},
	RoleChurchManager: {
		{ResourceChurch, ActionRead}:   ScopeOwnChurch,
		{ResourceReport, ActionRead}:   ScopeOwnChurch,
		{ResourceExpense, ActionRead}:  ScopeOwnChurch,
		{ResourceCategory, ActionRead}: ScopeAll,
		{ResourceSummary, ActionRead}:  ScopeOwnChurch,
	},
	RoleSecretary: {
		{ResourceChurch, ActionRead}:   ScopeOwnChurch,
		{ResourceReport, ActionCreate}: ScopeOwnChurch,
		{ResourceReport, ActionRead}:   ScopeOwnChurch,
		{ResourceReport, ActionUpdate}: ScopeOwnChurch,
		{ResourceCategory, ActionRead}: ScopeAll,
		{ResourceSummary, ActionRead}:  ScopeOwnChurch,
	},
}

// grantAll builds a matrix row granting every (resource, action) pair at the
// given scope. Only the national admin row uses it.
func grantAll(scope PermissionScope) map[permissionKey]PermissionScope {
	resources := []Resource{
		ResourceChurch, ResourceFund, ResourceReport, ResourceTransaction,
		ResourceLedger, ResourceExpense, ResourceCategory, ResourceSummary, ResourceUser,
	}
	actions := []Action{
		ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionSubmit,
		ActionApprove, ActionReject, ActionProcess, ActionOpen, ActionClose, ActionReconcile,
	}
	row := make(map[permissionKey]PermissionScope, len(resources)*len(actions))
	for _, res := range resources {
		for _, act := range actions {
			row[permissionKey{res, act}] = scope
		}
	}
	return row
}

// Permission returns the scope granted to role for (resource, action) and
// whether any grant exists.
func Permission(role Role, resource Resource, action Action) (PermissionScope, bool) {
	row, ok := permissionMatrix[role]
	if !ok {
		return "", false
	}
	scope, ok := row[permissionKey{resource, action}]
	return scope, ok
}

// Principal is the authenticated identity supplied by the auth collaborator.
// The engines trust only its ID; role and scope are re-resolved per call.
type Principal struct {
	UserID   string
	Email    string
	Role     Role
	ChurchID *string
}

// ResolvedScope is the effective scope derived from the principal's current
// stored role and assignments.
type ResolvedScope struct {
	UserID   string
	Role     Role
	ChurchID *string
	FundIDs  []string
}

// HasFund reports whether fundID is among the scope's assigned funds.
func (s ResolvedScope) HasFund(fundID string) bool {
	for _, id := range s.FundIDs {
		if id == fundID {
			return true
		}
	}
	return false
}

// AuthzTarget identifies the owning church and/or fund of the record an
// operation touches. Nil fields mean national-level records.
type AuthzTarget struct {
	ChurchID *string
	FundID   *string
}
