package organizations_dto

import (
	"time"

	"chorey/internal/features/organizations/roles"

	"github.com/google/uuid"
)

type CreateOrganizationRequestDTO struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateOrganizationRequestDTO struct {
	Name                  *string `json:"name,omitempty"                  binding:"omitempty,min=1,max=100"`
	APIRateLimitPerSecond *int    `json:"apiRateLimitPerSecond,omitempty" binding:"omitempty,min=1,max=10000"`
}

type OrganizationResponseDTO struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"createdAt"`
	UserRole  *roles.RoleID `json:"userRole,omitempty"`
}

type ListOrganizationsResponseDTO struct {
	Organizations []OrganizationResponseDTO `json:"organizations"`
}

type AddMemberRequestDTO struct {
	Email  string       `json:"email"  binding:"required,email"`
	RoleID roles.RoleID `json:"roleId" binding:"required"`
}

type ChangeMemberRoleRequestDTO struct {
	RoleID roles.RoleID `json:"roleId" binding:"required"`
}

type OrganizationMemberResponseDTO struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"userId"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	RoleID    roles.RoleID `json:"roleId"`
	CreatedAt time.Time    `json:"createdAt"`
}

type GetMembersResponseDTO struct {
	Members []OrganizationMemberResponseDTO `json:"members"`
}

type UpsertRoleRequestDTO struct {
	RoleID      roles.RoleID       `json:"roleId"      binding:"required,min=1,max=50"`
	Permissions []roles.Permission `json:"permissions" binding:"required"`
}

type ListRolesResponseDTO struct {
	Roles []roles.Role `json:"roles"`
}
