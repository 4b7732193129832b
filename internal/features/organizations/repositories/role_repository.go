package organizations_repositories

import (
	"errors"
	"time"

	organizations_models "chorey/internal/features/organizations/models"
	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// GetOrganizationRoles loads the organization's custom role definitions keyed
// by role id, ready to be merged over the built-in defaults.
func (r *RoleRepository) GetOrganizationRoles(
	organizationID uuid.UUID,
) (map[roles.RoleID]roles.Role, error) {
	var rows []*organizations_models.OrganizationRole

	err := r.db.
		Where("organization_id = ?", organizationID).
		Find(&rows).Error

	if err != nil {
		return nil, err
	}

	overrides := make(map[roles.RoleID]roles.Role, len(rows))
	for _, row := range rows {
		overrides[row.RoleID] = row.ToRole()
	}

	return overrides, nil
}

func (r *RoleRepository) GetRoleByOrganizationAndID(
	organizationID uuid.UUID,
	roleID roles.RoleID,
) (*organizations_models.OrganizationRole, error) {
	var row organizations_models.OrganizationRole

	err := r.db.
		Where("organization_id = ? AND role_id = ?", organizationID, roleID).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &row, nil
}

func (r *RoleRepository) UpsertRole(role *organizations_models.OrganizationRole) error {
	existing, err := r.GetRoleByOrganizationAndID(role.OrganizationID, role.RoleID)
	if err != nil {
		return err
	}

	if existing != nil {
		existing.Permissions = role.Permissions
		return r.db.Save(existing).Error
	}

	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}

	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(role).Error
}

func (r *RoleRepository) DeleteRole(organizationID uuid.UUID, roleID roles.RoleID) error {
	return r.db.
		Where("organization_id = ? AND role_id = ?", organizationID, roleID).
		Delete(&organizations_models.OrganizationRole{}).Error
}
