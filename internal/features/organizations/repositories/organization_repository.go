package organizations_repositories

import (
	"errors"
	"time"

	organizations_models "chorey/internal/features/organizations/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) CreateOrganization(organization *organizations_models.Organization) error {
	if organization.ID == uuid.Nil {
		organization.ID = uuid.New()
	}

	if organization.CreatedAt.IsZero() {
		organization.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(organization).Error
}

func (r *OrganizationRepository) GetOrganizationByID(
	organizationID uuid.UUID,
) (*organizations_models.Organization, error) {
	var organization organizations_models.Organization

	err := r.db.
		Where("id = ?", organizationID).
		First(&organization).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &organization, nil
}

func (r *OrganizationRepository) UpdateOrganization(organization *organizations_models.Organization) error {
	return r.db.Save(organization).Error
}

func (r *OrganizationRepository) DeleteOrganization(organizationID uuid.UUID) error {
	return r.db.Delete(&organizations_models.Organization{}, organizationID).Error
}
