package organizations_services

import (
	"errors"
	"fmt"

	audit_logs "chorey/internal/features/audit_logs"
	organizations_dto "chorey/internal/features/organizations/dto"
	organizations_models "chorey/internal/features/organizations/models"
	organizations_repositories "chorey/internal/features/organizations/repositories"
	"chorey/internal/features/organizations/roles"
	users_models "chorey/internal/features/users/models"
	users_services "chorey/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository *organizations_repositories.MembershipRepository
	userService          *users_services.UserService
	permissionService    *PermissionService
	auditLogService      *audit_logs.AuditLogService
}

func (s *MembershipService) GetMembers(
	organizationID uuid.UUID,
	user *users_models.User,
) (*organizations_dto.GetMembersResponseDTO, error) {
	if !s.permissionService.IsMember(user.ID, organizationID) {
		return nil, errors.New("insufficient permissions to view organization members")
	}

	members, err := s.membershipRepository.GetOrganizationMembers(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get organization members: %w", err)
	}

	membersList := make([]organizations_dto.OrganizationMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = *member
	}

	return &organizations_dto.GetMembersResponseDTO{
		Members: membersList,
	}, nil
}

func (s *MembershipService) AddMember(
	organizationID uuid.UUID,
	request *organizations_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) error {
	if err := s.validateCanManageMembership(organizationID, addedBy, request.RoleID); err != nil {
		return err
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if targetUser == nil {
		return errors.New("user with this email does not exist")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndOrganization(
		targetUser.ID,
		organizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if existingMembership != nil {
		return errors.New("user is already a member of this organization")
	}

	membership := &organizations_models.OrganizationMembership{
		UserID:         targetUser.ID,
		OrganizationID: organizationID,
		RoleID:         request.RoleID,
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to organization: %s as %s", targetUser.Email, request.RoleID),
		&addedBy.ID,
		&organizationID,
	)

	return nil
}

func (s *MembershipService) ChangeMemberRole(
	organizationID uuid.UUID,
	memberUserID uuid.UUID,
	request *organizations_dto.ChangeMemberRoleRequestDTO,
	changedBy *users_models.User,
) error {
	if err := s.validateCanManageMembership(organizationID, changedBy, request.RoleID); err != nil {
		return err
	}

	if memberUserID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndOrganization(
		memberUserID,
		organizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if existingMembership == nil {
		return errors.New("user is not a member of this organization")
	}

	if existingMembership.RoleID == roles.RoleOwner {
		return errors.New("cannot change owner role, transfer ownership first")
	}

	if err := s.membershipRepository.UpdateMemberRole(memberUserID, organizationID, request.RoleID); err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf(
			"Member role changed from %s to %s",
			existingMembership.RoleID,
			request.RoleID,
		),
		&changedBy.ID,
		&organizationID,
	)

	return nil
}

func (s *MembershipService) RemoveMember(
	organizationID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	if !s.permissionService.HasPermission(removedBy.ID, organizationID, roles.PermissionManageMembers) {
		return errors.New("insufficient permissions to remove members")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndOrganization(
		memberUserID,
		organizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if existingMembership == nil {
		return errors.New("user is not a member of this organization")
	}

	if existingMembership.RoleID == roles.RoleOwner {
		return errors.New("cannot remove organization owner, transfer ownership first")
	}

	if err := s.membershipRepository.RemoveMember(memberUserID, organizationID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		"Member removed from organization",
		&removedBy.ID,
		&organizationID,
	)

	return nil
}

func (s *MembershipService) TransferOwnership(
	organizationID uuid.UUID,
	newOwnerUserID uuid.UUID,
	user *users_models.User,
) error {
	currentRole, err := s.permissionService.GetUserRole(user.ID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to get current user role: %w", err)
	}

	if currentRole == nil || *currentRole != roles.RoleOwner {
		return errors.New("only the organization owner can transfer ownership")
	}

	newOwnerMembership, err := s.membershipRepository.GetMembershipByUserAndOrganization(
		newOwnerUserID,
		organizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if newOwnerMembership == nil {
		return errors.New("new owner must be an organization member")
	}

	if err := s.membershipRepository.UpdateMemberRole(newOwnerUserID, organizationID, roles.RoleOwner); err != nil {
		return fmt.Errorf("failed to update new owner role: %w", err)
	}

	if err := s.membershipRepository.UpdateMemberRole(user.ID, organizationID, roles.RoleAdmin); err != nil {
		return fmt.Errorf("failed to update previous owner role: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		"Organization ownership transferred",
		&user.ID,
		&organizationID,
	)

	return nil
}

func (s *MembershipService) validateCanManageMembership(
	organizationID uuid.UUID,
	user *users_models.User,
	targetRoleID roles.RoleID,
) error {
	if !s.permissionService.HasPermission(user.ID, organizationID, roles.PermissionManageMembers) {
		return errors.New("insufficient permissions to manage members")
	}

	merged, err := s.permissionService.ResolveRoles(organizationID)
	if err != nil {
		return fmt.Errorf("failed to resolve roles: %w", err)
	}

	if _, ok := merged[targetRoleID]; !ok {
		return fmt.Errorf("unknown role: %s", targetRoleID)
	}

	if targetRoleID == roles.RoleOwner || targetRoleID == roles.RoleAdmin {
		currentRole, err := s.permissionService.GetUserRole(user.ID, organizationID)
		if err != nil {
			return fmt.Errorf("failed to get user role: %w", err)
		}

		if currentRole == nil || *currentRole != roles.RoleOwner {
			return errors.New("only the organization owner can assign admin or owner roles")
		}
	}

	return nil
}
