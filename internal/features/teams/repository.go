package teams

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateTeam(team *Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}

	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(team).Error
}

func (r *TeamRepository) GetTeamByID(teamID uuid.UUID) (*Team, error) {
	var team Team

	err := r.db.
		Where("id = ?", teamID).
		First(&team).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &team, nil
}

func (r *TeamRepository) GetTeamsByOrganization(organizationID uuid.UUID) ([]*Team, error) {
	var teams []*Team

	err := r.db.
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&teams).Error

	return teams, err
}

func (r *TeamRepository) UpdateTeam(team *Team) error {
	return r.db.Save(team).Error
}

func (r *TeamRepository) DeleteTeam(teamID uuid.UUID) error {
	if err := r.db.Where("team_id = ?", teamID).Delete(&TeamMember{}).Error; err != nil {
		return err
	}

	return r.db.Delete(&Team{}, teamID).Error
}

func (r *TeamRepository) DeleteTeamsByOrganization(organizationID uuid.UUID) error {
	var teamIDs []uuid.UUID

	err := r.db.
		Model(&Team{}).
		Where("organization_id = ?", organizationID).
		Pluck("id", &teamIDs).Error
	if err != nil {
		return err
	}

	if len(teamIDs) > 0 {
		if err := r.db.Where("team_id IN ?", teamIDs).Delete(&TeamMember{}).Error; err != nil {
			return err
		}
	}

	return r.db.
		Where("organization_id = ?", organizationID).
		Delete(&Team{}).Error
}

func (r *TeamRepository) AddTeamMember(member *TeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}

	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(member).Error
}

func (r *TeamRepository) GetTeamMembers(teamID uuid.UUID) ([]*TeamMember, error) {
	var members []*TeamMember

	err := r.db.
		Where("team_id = ?", teamID).
		Find(&members).Error

	return members, err
}

func (r *TeamRepository) GetTeamMember(teamID, userID uuid.UUID) (*TeamMember, error) {
	var member TeamMember

	err := r.db.
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &member, nil
}

func (r *TeamRepository) RemoveTeamMember(teamID, userID uuid.UUID) error {
	return r.db.
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&TeamMember{}).Error
}
