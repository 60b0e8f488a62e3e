package auth

import (
	"github.com/spec-kit/dispatch-service/internal/domain"
)

// roleTier assigns each role its privilege weight.
// A role without an entry fails every check.
var roleTier = map[domain.Role]int{
	domain.RoleAdmin:     4,
	domain.RoleChief:     3,
	domain.RoleDisponent: 2,
	domain.RoleAnalyst:   1,
}

// HasPermission reports whether userRole satisfies requiredRole.
// Unknown roles on either side yield false.
func HasPermission(userRole, requiredRole domain.Role) bool {
	userTier, ok := roleTier[userRole]
	if !ok {
		return false
	}
	requiredTier, ok := roleTier[requiredRole]
	if !ok {
		return false
	}
	return userTier >= requiredTier
}

// PermissionCheck is a named capability predicate over a role.
type PermissionCheck func(domain.Role) bool

// Permission names recognized by the guards.
const (
	PermManageShifts    = "canManageShifts"
	PermViewAudit       = "canViewAudit"
	PermApplyForShifts  = "canApplyForShifts"
	PermViewAnalytics   = "canViewAnalytics"
	PermAssignShifts    = "canAssignShifts"
	PermManageTemplates = "canManageTemplates"
)

// Permissions binds each capability to its minimum role.
var Permissions = map[string]PermissionCheck{
	PermManageShifts:    atLeast(domain.RoleChief),
	PermViewAudit:       atLeast(domain.RoleAdmin),
	PermApplyForShifts:  atLeast(domain.RoleDisponent),
	PermViewAnalytics:   atLeast(domain.RoleAnalyst),
	PermAssignShifts:    atLeast(domain.RoleChief),
	PermManageTemplates: atLeast(domain.RoleChief),
}

func atLeast(required domain.Role) PermissionCheck {
	return func(role domain.Role) bool {
		return HasPermission(role, required)
	}
}

// resourceActions maps resource/action pairs onto permission names.
// Actions absent from a resource's map fall back to the resource
// default; resources absent from the table always deny.
var resourceActions = map[string]struct {
	actions     map[string]string
	defaultPerm string
}{
	"shifts": {
		actions: map[string]string{
			"read":   PermViewAnalytics,
			"write":  PermManageShifts,
			"create": PermManageShifts,
			"update": PermManageShifts,
			"delete": PermManageShifts,
			"apply":  PermApplyForShifts,
			"assign": PermAssignShifts,
		},
	},
	"audit": {
		actions: map[string]string{
			"read": PermViewAudit,
		},
	},
	"templates": {
		actions: map[string]string{
			"read": PermViewAnalytics,
		},
		defaultPerm: PermManageTemplates,
	},
	"analytics": {
		defaultPerm: PermViewAnalytics,
	},
}

// AllowsResourceAction evaluates the resource/action table for a role.
func AllowsResourceAction(role domain.Role, resource, action string) bool {
	entry, ok := resourceActions[resource]
	if !ok {
		return false
	}
	permName, ok := entry.actions[action]
	if !ok {
		permName = entry.defaultPerm
	}
	check, ok := Permissions[permName]
	if !ok {
		return false
	}
	return check(role)
}
