package users_dto

import (
	"time"

	users_enums "chorey/internal/features/users/enums"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type UpdateProfileRequestDTO struct {
	Name      *string   `json:"name,omitempty"      binding:"omitempty,min=1,max=100"`
	AvatarURL *string   `json:"avatarUrl,omitempty" binding:"omitempty,max=2048"`
	Skills    *[]string `json:"skills,omitempty"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	AvatarURL string                 `json:"avatarUrl"`
	Points    int                    `json:"points"`
	Skills    []string               `json:"skills"`
	Status    users_enums.UserStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
}

// PublicUserDTO is the only user shape ever exposed over the machine API.
// It must never grow credential, token, or role fields.
type PublicUserDTO struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	AvatarURL string                 `json:"avatarUrl"`
	Points    int                    `json:"points"`
	Skills    []string               `json:"skills"`
	Status    users_enums.UserStatus `json:"status"`
}
