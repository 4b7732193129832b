package organizations_interfaces

import (
	organizations_models "chorey/internal/features/organizations/models"
	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
)

// Read-side slices of the repositories consumed by the permission checker.
// Narrow interfaces keep authorization decisions testable with fakes.

type OrganizationReader interface {
	GetOrganizationByID(organizationID uuid.UUID) (*organizations_models.Organization, error)
}

type MembershipReader interface {
	GetUserRole(userID, organizationID uuid.UUID) (*roles.RoleID, error)
}

type RoleReader interface {
	GetOrganizationRoles(organizationID uuid.UUID) (map[roles.RoleID]roles.Role, error)
}

// OrganizationDeletionListener lets dependent features clean up their data
// before an organization is removed.
type OrganizationDeletionListener interface {
	OnBeforeOrganizationDeletion(organizationID uuid.UUID) error
}
