package roles

// RoleID names a role within an organization. Built-in roles exist in every
// organization; custom roles are stored per organization and may reuse a
// built-in id to override it for that organization only.
type RoleID string

const (
	RoleOwner  RoleID = "OWNER"
	RoleAdmin  RoleID = "ADMIN"
	RoleMember RoleID = "MEMBER"
	RoleGuest  RoleID = "GUEST"
)

// Permission is a fine-grained capability granted to interactive users via
// their role. It is a separate namespace from the machine API scopes: holding
// a permission never implies an API scope, and vice versa.
type Permission string

const (
	PermissionManageOrganization Permission = "manage_organization"
	PermissionManageMembers      Permission = "manage_members"
	PermissionManageTeams        Permission = "manage_teams"
	PermissionManageWebhooks     Permission = "manage_webhooks"
	PermissionManageAPIKeys      Permission = "manage_api_keys"
	PermissionViewAllTasks       Permission = "view_all_tasks"
	PermissionManageChecklists   Permission = "manage_checklists"
	PermissionManageWorkflow     Permission = "manage_workflow"
	PermissionManageIPWhitelist  Permission = "manage_ip_whitelist"
	PermissionManageSavedFilters Permission = "manage_saved_filters"
	PermissionManageAutomations  Permission = "manage_automations"
)

func (p Permission) IsValid() bool {
	switch p {
	case PermissionManageOrganization,
		PermissionManageMembers,
		PermissionManageTeams,
		PermissionManageWebhooks,
		PermissionManageAPIKeys,
		PermissionViewAllTasks,
		PermissionManageChecklists,
		PermissionManageWorkflow,
		PermissionManageIPWhitelist,
		PermissionManageSavedFilters,
		PermissionManageAutomations:
		return true
	default:
		return false
	}
}

type Role struct {
	ID          RoleID       `json:"id"`
	Permissions []Permission `json:"permissions"`
}

func (r Role) HasPermission(permission Permission) bool {
	for _, p := range r.Permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// DefaultRoles returns a fresh copy of the built-in role table so callers can
// merge overrides into it without mutating process-wide state.
func DefaultRoles() map[RoleID]Role {
	return map[RoleID]Role{
		RoleOwner: {
			ID: RoleOwner,
			Permissions: []Permission{
				PermissionManageOrganization,
				PermissionManageMembers,
				PermissionManageTeams,
				PermissionManageWebhooks,
				PermissionManageAPIKeys,
				PermissionViewAllTasks,
				PermissionManageChecklists,
				PermissionManageWorkflow,
				PermissionManageIPWhitelist,
				PermissionManageSavedFilters,
				PermissionManageAutomations,
			},
		},
		RoleAdmin: {
			ID: RoleAdmin,
			Permissions: []Permission{
				PermissionManageMembers,
				PermissionManageTeams,
				PermissionManageWebhooks,
				PermissionManageAPIKeys,
				PermissionViewAllTasks,
				PermissionManageChecklists,
				PermissionManageWorkflow,
				PermissionManageSavedFilters,
				PermissionManageAutomations,
			},
		},
		RoleMember: {
			ID: RoleMember,
			Permissions: []Permission{
				PermissionManageChecklists,
				PermissionManageSavedFilters,
			},
		},
		RoleGuest: {
			ID:          RoleGuest,
			Permissions: []Permission{},
		},
	}
}

// MergeRoles overlays per-organization role overrides on top of the defaults.
// An override with the same id as a default replaces that default entirely.
func MergeRoles(defaults map[RoleID]Role, overrides map[RoleID]Role) map[RoleID]Role {
	merged := make(map[RoleID]Role, len(defaults)+len(overrides))

	for id, role := range defaults {
		merged[id] = role
	}

	for id, role := range overrides {
		merged[id] = role
	}

	return merged
}
