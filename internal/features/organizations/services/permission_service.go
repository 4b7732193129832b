package organizations_services

import (
	"log/slog"

	organizations_interfaces "chorey/internal/features/organizations/interfaces"
	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
)

// PermissionService answers role-based authorization questions for
// interactive users. Every check re-reads current organization, membership,
// and role state, so role changes take effect on the next check. Every
// failure path denies.
type PermissionService struct {
	organizationRepository organizations_interfaces.OrganizationReader
	membershipRepository   organizations_interfaces.MembershipReader
	roleRepository         organizations_interfaces.RoleReader
	logger                 *slog.Logger
}

func NewPermissionService(
	organizationRepository organizations_interfaces.OrganizationReader,
	membershipRepository organizations_interfaces.MembershipReader,
	roleRepository organizations_interfaces.RoleReader,
	logger *slog.Logger,
) *PermissionService {
	return &PermissionService{
		organizationRepository: organizationRepository,
		membershipRepository:   membershipRepository,
		roleRepository:         roleRepository,
		logger:                 logger,
	}
}

func (s *PermissionService) HasPermission(
	userID, organizationID uuid.UUID,
	permission roles.Permission,
) bool {
	organization, err := s.organizationRepository.GetOrganizationByID(organizationID)
	if err != nil {
		s.logger.Error("failed to load organization for permission check",
			"organizationId", organizationID, "error", err)
		return false
	}

	if organization == nil {
		s.logger.Warn("permission check against missing organization",
			"organizationId", organizationID)
		return false
	}

	roleID, err := s.membershipRepository.GetUserRole(userID, organizationID)
	if err != nil {
		s.logger.Error("failed to load membership for permission check",
			"userId", userID, "organizationId", organizationID, "error", err)
		return false
	}

	if roleID == nil {
		return false
	}

	merged, err := s.mergedRoles(organizationID)
	if err != nil {
		return false
	}

	role, ok := merged[*roleID]
	if !ok {
		s.logger.Warn("membership references unknown role",
			"roleId", *roleID, "organizationId", organizationID)
		return false
	}

	return role.HasPermission(permission)
}

func (s *PermissionService) IsMember(userID, organizationID uuid.UUID) bool {
	roleID, err := s.membershipRepository.GetUserRole(userID, organizationID)
	if err != nil {
		s.logger.Error("failed to load membership",
			"userId", userID, "organizationId", organizationID, "error", err)
		return false
	}

	return roleID != nil
}

func (s *PermissionService) GetUserRole(userID, organizationID uuid.UUID) (*roles.RoleID, error) {
	return s.membershipRepository.GetUserRole(userID, organizationID)
}

func (s *PermissionService) mergedRoles(organizationID uuid.UUID) (map[roles.RoleID]roles.Role, error) {
	overrides, err := s.roleRepository.GetOrganizationRoles(organizationID)
	if err != nil {
		s.logger.Error("failed to load custom roles",
			"organizationId", organizationID, "error", err)
		return nil, err
	}

	return roles.MergeRoles(roles.DefaultRoles(), overrides), nil
}

// ResolveRoles returns the organization's effective role table (defaults
// overlaid with custom definitions).
func (s *PermissionService) ResolveRoles(organizationID uuid.UUID) (map[roles.RoleID]roles.Role, error) {
	return s.mergedRoles(organizationID)
}
