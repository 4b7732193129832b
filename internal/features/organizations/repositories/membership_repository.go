package organizations_repositories

import (
	"errors"
	"time"

	organizations_dto "chorey/internal/features/organizations/dto"
	organizations_models "chorey/internal/features/organizations/models"
	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) CreateMembership(membership *organizations_models.OrganizationMembership) error {
	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	if membership.CreatedAt.IsZero() {
		membership.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(membership).Error
}

func (r *MembershipRepository) GetMembershipByUserAndOrganization(
	userID, organizationID uuid.UUID,
) (*organizations_models.OrganizationMembership, error) {
	var membership organizations_models.OrganizationMembership

	err := r.db.
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		First(&membership).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &membership, nil
}

// GetUserRole returns the user's role id within the organization, or nil when
// the user has no membership there.
func (r *MembershipRepository) GetUserRole(userID, organizationID uuid.UUID) (*roles.RoleID, error) {
	membership, err := r.GetMembershipByUserAndOrganization(userID, organizationID)
	if err != nil {
		return nil, err
	}

	if membership == nil {
		return nil, nil
	}

	return &membership.RoleID, nil
}

func (r *MembershipRepository) GetOrganizationMembers(
	organizationID uuid.UUID,
) ([]*organizations_dto.OrganizationMemberResponseDTO, error) {
	var members []*organizations_dto.OrganizationMemberResponseDTO

	err := r.db.
		Table("organization_memberships om").
		Select("om.id, om.user_id, u.email, u.name, om.role_id, om.created_at").
		Joins("JOIN users u ON om.user_id = u.id").
		Where("om.organization_id = ?", organizationID).
		Order("om.created_at ASC").
		Scan(&members).Error

	return members, err
}

func (r *MembershipRepository) UpdateMemberRole(userID, organizationID uuid.UUID, roleID roles.RoleID) error {
	return r.db.
		Model(&organizations_models.OrganizationMembership{}).
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Update("role_id", roleID).Error
}

func (r *MembershipRepository) RemoveMember(userID, organizationID uuid.UUID) error {
	return r.db.
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		Delete(&organizations_models.OrganizationMembership{}).Error
}

func (r *MembershipRepository) GetOrganizationsWithRolesByUserID(
	userID uuid.UUID,
) ([]organizations_dto.OrganizationResponseDTO, error) {
	results := make([]organizations_dto.OrganizationResponseDTO, 0)

	err := r.db.
		Table("organizations o").
		Select("o.id, o.name, o.created_at, om.role_id as user_role").
		Joins("JOIN organization_memberships om ON o.id = om.organization_id").
		Where("om.user_id = ?", userID).
		Order("o.name ASC").
		Scan(&results).Error

	return results, err
}
