package users_repositories

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	users_models "chorey/internal/features/users/models"

	"gorm.io/gorm"
)

type SecretKeyRepository struct {
	db *gorm.DB
}

func NewSecretKeyRepository(db *gorm.DB) *SecretKeyRepository {
	return &SecretKeyRepository{db: db}
}

// GetSecretKey returns the JWT signing secret, generating and persisting one
// on first use.
func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	var secretKey users_models.SecretKey

	err := r.db.First(&secretKey).Error
	if err == nil {
		return secretKey.Secret, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	secretKey.Secret = hex.EncodeToString(secretBytes)
	if err := r.db.Create(&secretKey).Error; err != nil {
		return "", err
	}

	return secretKey.Secret, nil
}
