package organizations_services

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	organizations_models "chorey/internal/features/organizations/models"
	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeOrganizationReader struct {
	organizations map[uuid.UUID]*organizations_models.Organization
	err           error
}

func (r *fakeOrganizationReader) GetOrganizationByID(
	organizationID uuid.UUID,
) (*organizations_models.Organization, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.organizations[organizationID], nil
}

type membershipKey struct {
	userID         uuid.UUID
	organizationID uuid.UUID
}

type fakeMembershipReader struct {
	memberships map[membershipKey]roles.RoleID
	err         error
}

func (r *fakeMembershipReader) GetUserRole(
	userID, organizationID uuid.UUID,
) (*roles.RoleID, error) {
	if r.err != nil {
		return nil, r.err
	}

	roleID, ok := r.memberships[membershipKey{userID, organizationID}]
	if !ok {
		return nil, nil
	}
	return &roleID, nil
}

type fakeRoleReader struct {
	overrides map[uuid.UUID]map[roles.RoleID]roles.Role
	err       error
}

func (r *fakeRoleReader) GetOrganizationRoles(
	organizationID uuid.UUID,
) (map[roles.RoleID]roles.Role, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.overrides[organizationID], nil
}

type permissionFixture struct {
	service        *PermissionService
	organizations  *fakeOrganizationReader
	memberships    *fakeMembershipReader
	roleOverrides  *fakeRoleReader
	organizationID uuid.UUID
	userID         uuid.UUID
}

func createPermissionFixture() *permissionFixture {
	organizationID := uuid.New()
	userID := uuid.New()

	organizationReader := &fakeOrganizationReader{
		organizations: map[uuid.UUID]*organizations_models.Organization{
			organizationID: {ID: organizationID, Name: "Acme"},
		},
	}
	membershipReader := &fakeMembershipReader{
		memberships: map[membershipKey]roles.RoleID{},
	}
	roleReader := &fakeRoleReader{
		overrides: map[uuid.UUID]map[roles.RoleID]roles.Role{},
	}

	service := NewPermissionService(
		organizationReader,
		membershipReader,
		roleReader,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	return &permissionFixture{
		service:        service,
		organizations:  organizationReader,
		memberships:    membershipReader,
		roleOverrides:  roleReader,
		organizationID: organizationID,
		userID:         userID,
	}
}

func (f *permissionFixture) grantRole(roleID roles.RoleID) {
	f.memberships.memberships[membershipKey{f.userID, f.organizationID}] = roleID
}

func Test_HasPermission_WhenOrganizationDoesNotExist_Denies(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleOwner)

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, uuid.New(), roles.PermissionManageTeams))
}

func Test_HasPermission_WhenOrganizationLookupFails_Denies(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleOwner)
	fixture.organizations.err = errors.New("connection refused")

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_WhenUserIsNotAMember_Denies(t *testing.T) {
	fixture := createPermissionFixture()

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_WhenMembershipLookupFails_Denies(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleOwner)
	fixture.memberships.err = errors.New("connection refused")

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_WhenRoleLookupFails_Denies(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleOwner)
	fixture.roleOverrides.err = errors.New("connection refused")

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_WhenMembershipReferencesUnknownRole_Denies(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole("GHOST_ROLE")

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_WhenRoleLacksThePermission_Denies(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleGuest)

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_WhenRoleGrantsThePermission_Allows(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleAdmin)

	assert.True(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_CustomRoleOverrideAppliesOnlyToItsOrganization(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleMember)

	otherOrganizationID := uuid.New()
	fixture.organizations.organizations[otherOrganizationID] = &organizations_models.Organization{
		ID:   otherOrganizationID,
		Name: "Globex",
	}
	fixture.memberships.memberships[membershipKey{fixture.userID, otherOrganizationID}] = roles.RoleMember

	// Acme redefines MEMBER to include manage_teams, Globex keeps the default
	fixture.roleOverrides.overrides[fixture.organizationID] = map[roles.RoleID]roles.Role{
		roles.RoleMember: {
			ID:          roles.RoleMember,
			Permissions: []roles.Permission{roles.PermissionManageTeams},
		},
	}

	assert.True(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
	assert.False(t, fixture.service.HasPermission(
		fixture.userID, otherOrganizationID, roles.PermissionManageTeams))
}

func Test_HasPermission_RoleChangeTakesEffectOnNextCheck(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.grantRole(roles.RoleGuest)

	assert.False(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))

	fixture.grantRole(roles.RoleAdmin)

	assert.True(t, fixture.service.HasPermission(
		fixture.userID, fixture.organizationID, roles.PermissionManageTeams))
}

func Test_IsMember_ReflectsMembershipState(t *testing.T) {
	fixture := createPermissionFixture()

	assert.False(t, fixture.service.IsMember(fixture.userID, fixture.organizationID))

	fixture.grantRole(roles.RoleGuest)

	assert.True(t, fixture.service.IsMember(fixture.userID, fixture.organizationID))
}

func Test_ResolveRoles_IncludesDefaultsAndOverrides(t *testing.T) {
	fixture := createPermissionFixture()
	fixture.roleOverrides.overrides[fixture.organizationID] = map[roles.RoleID]roles.Role{
		"AUDITOR": {ID: "AUDITOR", Permissions: []roles.Permission{roles.PermissionViewAllTasks}},
	}

	resolved, err := fixture.service.ResolveRoles(fixture.organizationID)

	assert.NoError(t, err)
	assert.Contains(t, resolved, roles.RoleOwner)
	assert.Contains(t, resolved, roles.RoleID("AUDITOR"))
}
