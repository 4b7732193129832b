package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HasPermission_WhenPermissionIsGranted_ReturnsTrue(t *testing.T) {
	role := Role{
		ID:          RoleAdmin,
		Permissions: []Permission{PermissionManageTeams, PermissionManageMembers},
	}

	assert.True(t, role.HasPermission(PermissionManageTeams))
	assert.False(t, role.HasPermission(PermissionManageOrganization))
}

func Test_HasPermission_WhenRoleHasNoPermissions_ReturnsFalse(t *testing.T) {
	role := Role{ID: RoleGuest}

	assert.False(t, role.HasPermission(PermissionManageTeams))
}

func Test_DefaultRoles_ContainsAllBuiltInRoles(t *testing.T) {
	defaults := DefaultRoles()

	require.Len(t, defaults, 4)
	assert.Contains(t, defaults, RoleOwner)
	assert.Contains(t, defaults, RoleAdmin)
	assert.Contains(t, defaults, RoleMember)
	assert.Contains(t, defaults, RoleGuest)
}

func Test_DefaultRoles_OwnerHoldsEveryPermission(t *testing.T) {
	owner := DefaultRoles()[RoleOwner]

	for _, permission := range []Permission{
		PermissionManageOrganization,
		PermissionManageMembers,
		PermissionManageTeams,
		PermissionManageWebhooks,
		PermissionManageAPIKeys,
		PermissionViewAllTasks,
	} {
		assert.True(t, owner.HasPermission(permission), string(permission))
	}
}

func Test_DefaultRoles_ReturnsIndependentCopies(t *testing.T) {
	first := DefaultRoles()
	first[RoleMember] = Role{ID: RoleMember, Permissions: []Permission{PermissionManageOrganization}}

	second := DefaultRoles()

	assert.False(t, second[RoleMember].HasPermission(PermissionManageOrganization))
}

func Test_MergeRoles_OverrideReplacesBuiltInEntirely(t *testing.T) {
	overrides := map[RoleID]Role{
		RoleMember: {
			ID:          RoleMember,
			Permissions: []Permission{PermissionManageTeams},
		},
	}

	merged := MergeRoles(DefaultRoles(), overrides)

	member := merged[RoleMember]
	assert.True(t, member.HasPermission(PermissionManageTeams))
	// Replacement, not union: the built-in grants are gone
	assert.False(t, member.HasPermission(PermissionManageChecklists))
}

func Test_MergeRoles_AddsCustomRolesAlongsideDefaults(t *testing.T) {
	overrides := map[RoleID]Role{
		"AUDITOR": {
			ID:          "AUDITOR",
			Permissions: []Permission{PermissionViewAllTasks},
		},
	}

	merged := MergeRoles(DefaultRoles(), overrides)

	require.Contains(t, merged, RoleID("AUDITOR"))
	assert.True(t, merged["AUDITOR"].HasPermission(PermissionViewAllTasks))
	assert.Contains(t, merged, RoleOwner)
}

func Test_MergeRoles_DoesNotMutateInputs(t *testing.T) {
	defaults := DefaultRoles()
	overrides := map[RoleID]Role{
		RoleGuest: {ID: RoleGuest, Permissions: []Permission{PermissionViewAllTasks}},
	}

	MergeRoles(defaults, overrides)

	assert.False(t, defaults[RoleGuest].HasPermission(PermissionViewAllTasks))
}

func Test_IsValid_DistinguishesKnownPermissions(t *testing.T) {
	assert.True(t, PermissionManageAPIKeys.IsValid())
	assert.False(t, Permission("delete_everything").IsValid())
}
