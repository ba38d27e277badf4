package permissions

import "strings"

// Role is an admin account tier.
type Role string

// Admin roles. The resolver, not this ordering, defines authority.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleSupport    Role = "support"
)

// Roles returns all roles in descending capability order.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleModerator, RoleSupport}
}

// ParseRole normalizes a role string. The second return is false for
// anything outside the closed enumeration.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleModerator:
		return RoleModerator, true
	case RoleSupport:
		return RoleSupport, true
	default:
		return "", false
	}
}

// roleDefaults is the single source of truth for role default permission
// sets. super_admin has no entry; the resolver grants it the full catalog.
var roleDefaults = map[Role][]string{
	RoleAdmin: {
		"users.view", "users.edit", "users.suspend",
		"businesses.view", "businesses.edit", "businesses.approve",
		"services.view", "services.manage",
		"appointments.view", "appointments.manage",
		"content.view", "content.moderate", "content.delete",
		"analytics.view", "analytics.export",
		"admins.view",
	},
	RoleModerator: {
		"users.view", "users.suspend",
		"businesses.view",
		"content.view", "content.moderate", "content.delete",
	},
	RoleSupport: {
		"users.view",
		"businesses.view",
		"appointments.view",
		"content.view",
	},
}

// DefaultsFor returns the default permission set of a role. super_admin and
// unknown roles have no defaults; callers must special-case super_admin via
// the resolver.
func DefaultsFor(role Role) []string {
	defaults, ok := roleDefaults[role]
	if !ok {
		return nil
	}
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}

// HasDefaults reports whether a role resolves through the defaults table.
func HasDefaults(role Role) bool {
	_, ok := roleDefaults[role]
	return ok
}
