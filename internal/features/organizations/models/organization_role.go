package organizations_models

import (
	"strings"
	"time"

	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationRole is a per-organization role definition. A row whose RoleID
// matches a built-in role overrides that role for the owning organization
// only; other rows define entirely custom roles.
type OrganizationRole struct {
	ID             uuid.UUID          `json:"id"             gorm:"column:id"`
	OrganizationID uuid.UUID          `json:"organizationId" gorm:"column:organization_id"`
	RoleID         roles.RoleID       `json:"roleId"         gorm:"column:role_id"`
	PermissionsRaw string             `json:"-"              gorm:"column:permissions_raw"`
	Permissions    []roles.Permission `json:"permissions"    gorm:"-"`
	CreatedAt      time.Time          `json:"createdAt"      gorm:"column:created_at"`
}

func (OrganizationRole) TableName() string {
	return "organization_roles"
}

func (r *OrganizationRole) BeforeSave(tx *gorm.DB) error {
	if len(r.Permissions) > 0 {
		parts := make([]string, len(r.Permissions))
		for i, permission := range r.Permissions {
			parts[i] = string(permission)
		}
		r.PermissionsRaw = strings.Join(parts, ",")
	} else {
		r.PermissionsRaw = ""
	}

	return nil
}

func (r *OrganizationRole) AfterFind(tx *gorm.DB) error {
	if r.PermissionsRaw != "" {
		parts := strings.Split(r.PermissionsRaw, ",")
		r.Permissions = make([]roles.Permission, len(parts))
		for i, part := range parts {
			r.Permissions[i] = roles.Permission(strings.TrimSpace(part))
		}
	} else {
		r.Permissions = []roles.Permission{}
	}

	return nil
}

// ToRole converts the stored row to the registry's role shape.
func (r *OrganizationRole) ToRole() roles.Role {
	return roles.Role{
		ID:          r.RoleID,
		Permissions: r.Permissions,
	}
}
