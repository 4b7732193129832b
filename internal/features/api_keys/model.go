package api_keys

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApiKeyCredential struct {
	ID             uuid.UUID  `json:"id"             gorm:"column:id"`
	Name           string     `json:"name"           gorm:"column:name"`
	OrganizationID uuid.UUID  `json:"organizationId" gorm:"column:organization_id"`
	CreatorID      uuid.UUID  `json:"creatorId"      gorm:"column:creator_id"`
	KeyPrefix      string     `json:"keyPrefix"      gorm:"column:key_prefix"`
	KeyHash        string     `json:"-"              gorm:"column:key_hash"` // Never expose in JSON
	ScopesRaw      string     `json:"-"              gorm:"column:scopes"`
	LastUsedAt     *time.Time `json:"lastUsedAt"     gorm:"column:last_used_at"`
	CreatedAt      time.Time  `json:"createdAt"      gorm:"column:created_at"`

	Scopes []ApiScope `json:"scopes" gorm:"-"`
	Key    string     `json:"key,omitempty" gorm:"-"` // Populated only on creation and rotation
}

func (ApiKeyCredential) TableName() string {
	return "api_keys"
}

func (c *ApiKeyCredential) BeforeSave(_ *gorm.DB) error {
	parts := make([]string, len(c.Scopes))
	for i, scope := range c.Scopes {
		parts[i] = string(scope)
	}
	c.ScopesRaw = strings.Join(parts, ",")
	return nil
}

func (c *ApiKeyCredential) AfterFind(_ *gorm.DB) error {
	c.Scopes = nil
	if c.ScopesRaw == "" {
		return nil
	}
	for _, part := range strings.Split(c.ScopesRaw, ",") {
		c.Scopes = append(c.Scopes, ApiScope(part))
	}
	return nil
}
