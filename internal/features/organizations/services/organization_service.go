package organizations_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "chorey/internal/features/audit_logs"
	organizations_dto "chorey/internal/features/organizations/dto"
	organizations_interfaces "chorey/internal/features/organizations/interfaces"
	organizations_models "chorey/internal/features/organizations/models"
	organizations_repositories "chorey/internal/features/organizations/repositories"
	"chorey/internal/features/organizations/roles"
	users_models "chorey/internal/features/users/models"
	"chorey/internal/util/logger"
	"chorey/internal/util/rate_limit"

	"github.com/google/uuid"
)

const defaultAPIRateLimitPerSecond = 50

type OrganizationService struct {
	organizationRepository *organizations_repositories.OrganizationRepository
	membershipRepository   *organizations_repositories.MembershipRepository
	roleRepository         *organizations_repositories.RoleRepository
	permissionService      *PermissionService
	auditLogService        *audit_logs.AuditLogService
	rateLimiter            *rate_limit.RateLimiter

	deletionListeners []organizations_interfaces.OrganizationDeletionListener
}

func (s *OrganizationService) AddOrganizationDeletionListener(
	listener organizations_interfaces.OrganizationDeletionListener,
) {
	s.deletionListeners = append(s.deletionListeners, listener)
}

func (s *OrganizationService) CreateOrganization(
	request *organizations_dto.CreateOrganizationRequestDTO,
	creator *users_models.User,
) (*organizations_dto.OrganizationResponseDTO, error) {
	organization := &organizations_models.Organization{
		ID:                    uuid.New(),
		Name:                  request.Name,
		APIRateLimitPerSecond: defaultAPIRateLimitPerSecond,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.organizationRepository.CreateOrganization(organization); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	membership := &organizations_models.OrganizationMembership{
		UserID:         creator.ID,
		OrganizationID: organization.ID,
		RoleID:         roles.RoleOwner,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create organization membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Organization created: %s", organization.Name),
		&creator.ID,
		&organization.ID,
	)

	ownerRole := roles.RoleOwner
	return &organizations_dto.OrganizationResponseDTO{
		ID:        organization.ID,
		Name:      organization.Name,
		CreatedAt: organization.CreatedAt,
		UserRole:  &ownerRole,
	}, nil
}

func (s *OrganizationService) GetUserOrganizations(
	user *users_models.User,
) (*organizations_dto.ListOrganizationsResponseDTO, error) {
	organizations, err := s.membershipRepository.GetOrganizationsWithRolesByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user organizations: %w", err)
	}

	return &organizations_dto.ListOrganizationsResponseDTO{
		Organizations: organizations,
	}, nil
}

func (s *OrganizationService) GetOrganization(
	organizationID uuid.UUID,
	user *users_models.User,
) (*organizations_models.Organization, error) {
	if !s.permissionService.IsMember(user.ID, organizationID) {
		return nil, errors.New("insufficient permissions to view organization")
	}

	organization, err := s.organizationRepository.GetOrganizationByID(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	if organization == nil {
		return nil, errors.New("organization not found")
	}

	return organization, nil
}

func (s *OrganizationService) UpdateOrganization(
	organizationID uuid.UUID,
	request *organizations_dto.UpdateOrganizationRequestDTO,
	user *users_models.User,
) (*organizations_models.Organization, error) {
	if !s.permissionService.HasPermission(user.ID, organizationID, roles.PermissionManageOrganization) {
		return nil, errors.New("insufficient permissions to update organization")
	}

	organization, err := s.organizationRepository.GetOrganizationByID(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	if organization == nil {
		return nil, errors.New("organization not found")
	}

	if request.Name != nil {
		organization.Name = *request.Name
	}

	rateLimitChanged := false
	if request.APIRateLimitPerSecond != nil {
		rateLimitChanged = organization.APIRateLimitPerSecond != *request.APIRateLimitPerSecond
		organization.APIRateLimitPerSecond = *request.APIRateLimitPerSecond
	}

	if err := s.organizationRepository.UpdateOrganization(organization); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	// Drop the shared token bucket so the new budget applies immediately
	// instead of after the old bucket drains.
	if rateLimitChanged {
		if err := s.rateLimiter.ResetRateLimit(organizationID); err != nil {
			logger.GetLogger().Warn("failed to reset organization rate limit bucket",
				"organizationId", organizationID, "error", err)
		}
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Organization updated: %s", organization.Name),
		&user.ID,
		&organizationID,
	)

	return organization, nil
}

func (s *OrganizationService) DeleteOrganization(organizationID uuid.UUID, user *users_models.User) error {
	roleID, err := s.permissionService.GetUserRole(user.ID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to get user role: %w", err)
	}

	if roleID == nil || *roleID != roles.RoleOwner {
		return errors.New("only the organization owner can delete the organization")
	}

	organization, err := s.organizationRepository.GetOrganizationByID(organizationID)
	if err != nil {
		return fmt.Errorf("failed to get organization: %w", err)
	}

	if organization == nil {
		return errors.New("organization not found")
	}

	for _, listener := range s.deletionListeners {
		if err := listener.OnBeforeOrganizationDeletion(organizationID); err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}
	}

	if err := s.organizationRepository.DeleteOrganization(organizationID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Organization deleted: %s", organization.Name),
		&user.ID,
		&organizationID,
	)

	return nil
}

func (s *OrganizationService) ListRoles(
	organizationID uuid.UUID,
	user *users_models.User,
) (*organizations_dto.ListRolesResponseDTO, error) {
	if !s.permissionService.IsMember(user.ID, organizationID) {
		return nil, errors.New("insufficient permissions to view roles")
	}

	merged, err := s.permissionService.ResolveRoles(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roles: %w", err)
	}

	result := make([]roles.Role, 0, len(merged))
	for _, role := range merged {
		result = append(result, role)
	}

	return &organizations_dto.ListRolesResponseDTO{Roles: result}, nil
}

func (s *OrganizationService) UpsertRole(
	organizationID uuid.UUID,
	request *organizations_dto.UpsertRoleRequestDTO,
	user *users_models.User,
) error {
	if !s.permissionService.HasPermission(user.ID, organizationID, roles.PermissionManageOrganization) {
		return errors.New("insufficient permissions to manage roles")
	}

	for _, permission := range request.Permissions {
		if !permission.IsValid() {
			return fmt.Errorf("unknown permission: %s", permission)
		}
	}

	role := &organizations_models.OrganizationRole{
		OrganizationID: organizationID,
		RoleID:         request.RoleID,
		Permissions:    request.Permissions,
	}

	if err := s.roleRepository.UpsertRole(role); err != nil {
		return fmt.Errorf("failed to save role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Role defined: %s", request.RoleID),
		&user.ID,
		&organizationID,
	)

	return nil
}

func (s *OrganizationService) DeleteRole(
	organizationID uuid.UUID,
	roleID roles.RoleID,
	user *users_models.User,
) error {
	if !s.permissionService.HasPermission(user.ID, organizationID, roles.PermissionManageOrganization) {
		return errors.New("insufficient permissions to manage roles")
	}

	if err := s.roleRepository.DeleteRole(organizationID, roleID); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Role removed: %s", roleID),
		&user.ID,
		&organizationID,
	)

	return nil
}
