package api_keys

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKeyRepository struct {
	db *gorm.DB
}

func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

func (r *ApiKeyRepository) CreateCredential(credential *ApiKeyCredential) error {
	if credential.ID == uuid.Nil {
		credential.ID = uuid.New()
	}

	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(credential).Error
}

func (r *ApiKeyRepository) GetCredentialsByOrganizationID(organizationID uuid.UUID) ([]*ApiKeyCredential, error) {
	var credentials []*ApiKeyCredential

	err := r.db.
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&credentials).Error

	return credentials, err
}

func (r *ApiKeyRepository) GetCredentialByID(credentialID uuid.UUID) (*ApiKeyCredential, error) {
	var credential ApiKeyCredential

	err := r.db.
		Where("id = ?", credentialID).
		First(&credential).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &credential, nil
}

// GetCredentialsByKeyHash returns every record matching the hash. The caller
// treats anything other than exactly one match as an authentication failure.
func (r *ApiKeyRepository) GetCredentialsByKeyHash(keyHash string) ([]*ApiKeyCredential, error) {
	var credentials []*ApiKeyCredential

	err := r.db.
		Where("key_hash = ?", keyHash).
		Find(&credentials).Error

	return credentials, err
}

func (r *ApiKeyRepository) UpdateKeyHash(credentialID uuid.UUID, keyHash, keyPrefix string) error {
	return r.db.
		Model(&ApiKeyCredential{}).
		Where("id = ?", credentialID).
		Updates(map[string]interface{}{
			"key_hash":   keyHash,
			"key_prefix": keyPrefix,
		}).Error
}

func (r *ApiKeyRepository) UpdateLastUsed(credentialID uuid.UUID, usedAt time.Time) error {
	return r.db.
		Model(&ApiKeyCredential{}).
		Where("id = ?", credentialID).
		Update("last_used_at", usedAt).Error
}

func (r *ApiKeyRepository) DeleteCredential(credentialID uuid.UUID) error {
	return r.db.Delete(&ApiKeyCredential{}, credentialID).Error
}
