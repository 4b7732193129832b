package teams

import (
	"errors"
	"fmt"
	"time"

	audit_logs "chorey/internal/features/audit_logs"
	"chorey/internal/features/organizations/roles"
	users_models "chorey/internal/features/users/models"

	"github.com/google/uuid"
)

// PermissionChecker guards team management operations.
type PermissionChecker interface {
	IsMember(userID, organizationID uuid.UUID) bool
	HasPermission(userID uuid.UUID, organizationID uuid.UUID, permission roles.Permission) bool
}

type TeamService struct {
	teamRepository    *TeamRepository
	permissionChecker PermissionChecker
	auditLogService   *audit_logs.AuditLogService
}

func (s *TeamService) CreateTeam(
	organizationID uuid.UUID,
	request *CreateTeamRequestDTO,
	creator *users_models.User,
) (*Team, error) {
	if !s.permissionChecker.HasPermission(creator.ID, organizationID, roles.PermissionManageTeams) {
		return nil, errors.New("insufficient permissions to manage teams")
	}

	team := &Team{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           request.Name,
		Description:    request.Description,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.teamRepository.CreateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team created: %s", team.Name),
		&creator.ID,
		&organizationID,
	)

	return team, nil
}

func (s *TeamService) ListTeams(
	organizationID uuid.UUID,
	user *users_models.User,
) (*ListTeamsResponseDTO, error) {
	if !s.permissionChecker.IsMember(user.ID, organizationID) {
		return nil, errors.New("insufficient permissions to view teams")
	}

	teams, err := s.teamRepository.GetTeamsByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return &ListTeamsResponseDTO{Teams: teams}, nil
}

func (s *TeamService) UpdateTeam(
	organizationID uuid.UUID,
	teamID uuid.UUID,
	request *UpdateTeamRequestDTO,
	user *users_models.User,
) (*Team, error) {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageTeams) {
		return nil, errors.New("insufficient permissions to manage teams")
	}

	team, err := s.loadOrganizationTeam(organizationID, teamID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		team.Name = *request.Name
	}

	if request.Description != nil {
		team.Description = *request.Description
	}

	if err := s.teamRepository.UpdateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

func (s *TeamService) DeleteTeam(
	organizationID uuid.UUID,
	teamID uuid.UUID,
	user *users_models.User,
) error {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageTeams) {
		return errors.New("insufficient permissions to manage teams")
	}

	team, err := s.loadOrganizationTeam(organizationID, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepository.DeleteTeam(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team deleted: %s", team.Name),
		&user.ID,
		&organizationID,
	)

	return nil
}

func (s *TeamService) AddTeamMember(
	organizationID uuid.UUID,
	teamID uuid.UUID,
	request *AddTeamMemberRequestDTO,
	user *users_models.User,
) error {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageTeams) {
		return errors.New("insufficient permissions to manage teams")
	}

	if _, err := s.loadOrganizationTeam(organizationID, teamID); err != nil {
		return err
	}

	if !s.permissionChecker.IsMember(request.UserID, organizationID) {
		return errors.New("user is not a member of this organization")
	}

	existing, err := s.teamRepository.GetTeamMember(teamID, request.UserID)
	if err != nil {
		return fmt.Errorf("failed to check team membership: %w", err)
	}
	if existing != nil {
		return errors.New("user is already a member of this team")
	}

	member := &TeamMember{
		ID:        uuid.New(),
		TeamID:    teamID,
		UserID:    request.UserID,
		CreatedAt: time.Now().UTC(),
	}

	return s.teamRepository.AddTeamMember(member)
}

func (s *TeamService) GetTeamMembers(
	organizationID uuid.UUID,
	teamID uuid.UUID,
	user *users_models.User,
) (*GetTeamMembersResponseDTO, error) {
	if !s.permissionChecker.IsMember(user.ID, organizationID) {
		return nil, errors.New("insufficient permissions to view teams")
	}

	if _, err := s.loadOrganizationTeam(organizationID, teamID); err != nil {
		return nil, err
	}

	members, err := s.teamRepository.GetTeamMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}

	return &GetTeamMembersResponseDTO{Members: members}, nil
}

func (s *TeamService) RemoveTeamMember(
	organizationID uuid.UUID,
	teamID uuid.UUID,
	memberUserID uuid.UUID,
	user *users_models.User,
) error {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageTeams) {
		return errors.New("insufficient permissions to manage teams")
	}

	if _, err := s.loadOrganizationTeam(organizationID, teamID); err != nil {
		return err
	}

	return s.teamRepository.RemoveTeamMember(teamID, memberUserID)
}

// ListOrganizationTeams serves machine credentials holding the read scope.
func (s *TeamService) ListOrganizationTeams(organizationID uuid.UUID) (*ListTeamsResponseDTO, error) {
	teams, err := s.teamRepository.GetTeamsByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	return &ListTeamsResponseDTO{Teams: teams}, nil
}

// CreateTeamFromKey creates a team on behalf of an external system holding
// the write scope.
func (s *TeamService) CreateTeamFromKey(
	organizationID uuid.UUID,
	creatorID uuid.UUID,
	request *CreateTeamRequestDTO,
) (*Team, error) {
	team := &Team{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		Name:           request.Name,
		Description:    request.Description,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.teamRepository.CreateTeam(team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Team created via API: %s", team.Name),
		&creatorID,
		&organizationID,
	)

	return team, nil
}

func (s *TeamService) OnBeforeOrganizationDeletion(organizationID uuid.UUID) error {
	return s.teamRepository.DeleteTeamsByOrganization(organizationID)
}

func (s *TeamService) loadOrganizationTeam(organizationID, teamID uuid.UUID) (*Team, error) {
	team, err := s.teamRepository.GetTeamByID(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if team == nil || team.OrganizationID != organizationID {
		return nil, errors.New("team not found")
	}

	return team, nil
}
