package organizations_models

import (
	"time"

	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
)

type OrganizationMembership struct {
	ID             uuid.UUID    `json:"id"             gorm:"column:id"`
	UserID         uuid.UUID    `json:"userId"         gorm:"column:user_id"`
	OrganizationID uuid.UUID    `json:"organizationId" gorm:"column:organization_id"`
	RoleID         roles.RoleID `json:"roleId"         gorm:"column:role_id"`
	CreatedAt      time.Time    `json:"createdAt"      gorm:"column:created_at"`
}

func (OrganizationMembership) TableName() string {
	return "organization_memberships"
}
