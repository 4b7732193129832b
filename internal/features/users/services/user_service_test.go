package users_services

import (
	"encoding/json"
	"testing"

	users_enums "chorey/internal/features/users/enums"
	users_models "chorey/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToPublicUser_CopiesProfileFields(t *testing.T) {
	hashedPassword := "$2a$10$notarealhash"
	user := &users_models.User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: &hashedPassword,
		AvatarURL:      "https://cdn.example.com/ada.png",
		Points:         42,
		Skills:         []string{"go", "sql"},
		Status:         users_enums.UserStatusActive,
	}

	publicUser := ToPublicUser(user)

	assert.Equal(t, user.ID, publicUser.ID)
	assert.Equal(t, "Ada", publicUser.Name)
	assert.Equal(t, "ada@example.com", publicUser.Email)
	assert.Equal(t, "https://cdn.example.com/ada.png", publicUser.AvatarURL)
	assert.Equal(t, 42, publicUser.Points)
	assert.Equal(t, []string{"go", "sql"}, publicUser.Skills)
	assert.Equal(t, users_enums.UserStatusActive, publicUser.Status)
}

func Test_ToPublicUser_SerializationNeverLeaksCredentials(t *testing.T) {
	hashedPassword := "$2a$10$notarealhash"
	user := &users_models.User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: &hashedPassword,
	}

	body, err := json.Marshal(ToPublicUser(user))
	require.NoError(t, err)

	assert.NotContains(t, string(body), "notarealhash")
	assert.NotContains(t, string(body), "password")
}
