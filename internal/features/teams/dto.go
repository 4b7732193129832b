package teams

import (
	"github.com/google/uuid"
)

type CreateTeamRequestDTO struct {
	Name        string `json:"name"        binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

type UpdateTeamRequestDTO struct {
	Name        *string `json:"name,omitempty"        binding:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
}

type AddTeamMemberRequestDTO struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

type ListTeamsResponseDTO struct {
	Teams []*Team `json:"teams"`
}

type GetTeamMembersResponseDTO struct {
	Members []*TeamMember `json:"members"`
}
