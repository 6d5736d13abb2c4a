// Package authorization implements the role and permission model.
// Roles and services are closed enums matched exhaustively; every decision
// is a pure function of the acting user and the action, with no ambient
// state. Ownership-scoped rules (only the assigned technician may progress
// an issue) live here too so callers never duplicate them.
package authorization

type Role string

const (
	RoleTechnician Role = "technician"
	RoleTeamLeader Role = "team_leader"
	RoleSupervisor Role = "supervisor"
	RoleManager    Role = "manager"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleTechnician, RoleTeamLeader, RoleSupervisor, RoleManager:
		return true
	}
	return false
}

// IsManagement reports whether the role has cross-cutting visibility and
// administrative rights (team leaders, supervisors, managers).
func (r Role) IsManagement() bool {
	switch r {
	case RoleTeamLeader, RoleSupervisor, RoleManager:
		return true
	}
	return false
}

type Service string

const (
	ServiceMaintenance Service = "maintenance"
	ServiceProduction  Service = "production"
)

func (s Service) String() string {
	return string(s)
}

func (s Service) IsValid() bool {
	return s == ServiceMaintenance || s == ServiceProduction
}

type Action string

const (
	ActionCreateIssue    Action = "create_issue"
	ActionViewIssues     Action = "view_issues"
	ActionViewAllIssues  Action = "view_all_issues"
	ActionAssignIssue    Action = "assign_issue"
	ActionChangeStatus   Action = "change_status"
	ActionCloseIssue     Action = "close_issue"
	ActionAddNote        Action = "add_note"
	ActionManageMachines Action = "manage_machines"
	ActionManageUsers    Action = "manage_users"
	ActionViewAnalytics  Action = "view_analytics"
)

// Actor is the authenticated caller identity threaded through every
// operation.
type Actor struct {
	ID      uint
	UserID  string
	Role    Role
	Service Service
	Active  bool
}

// CanPerform is the coarse permission check: may this actor perform this
// action at all. Ownership-scoped refinements (own issue vs any issue) are
// handled by the scoped helpers below.
func CanPerform(actor Actor, action Action) bool {
	if !actor.Active {
		return false
	}

	switch action {
	case ActionCreateIssue:
		// Production staff report issues; management may report on
		// their behalf. Maintenance technicians resolve, not report.
		return actor.Service == ServiceProduction || actor.Role.IsManagement()
	case ActionViewIssues, ActionAddNote:
		return true
	case ActionViewAllIssues:
		return actor.Service == ServiceMaintenance || actor.Role.IsManagement()
	case ActionAssignIssue:
		return actor.Service == ServiceMaintenance
	case ActionChangeStatus, ActionCloseIssue:
		return actor.Service == ServiceMaintenance
	case ActionManageMachines, ActionManageUsers:
		return actor.Role.IsManagement()
	case ActionViewAnalytics:
		return actor.Service == ServiceMaintenance || actor.Role.IsManagement()
	}
	return false
}

// CanViewIssue reports whether the actor may read a specific issue.
// Production non-management users only see what they reported.
func CanViewIssue(actor Actor, reporterID uint, assigneeID *uint) bool {
	if !actor.Active {
		return false
	}
	if actor.Role.IsManagement() || actor.Service == ServiceMaintenance {
		return true
	}
	if reporterID == actor.ID {
		return true
	}
	return assigneeID != nil && *assigneeID == actor.ID
}

// CanTransitionIssue reports whether the actor may progress or close an
// assigned issue. Only the currently assigned technician qualifies; there
// is no manager override.
func CanTransitionIssue(actor Actor, assigneeID *uint) bool {
	if !actor.Active || actor.Service != ServiceMaintenance {
		return false
	}
	return assigneeID != nil && *assigneeID == actor.ID
}
