package api_keys

import (
	"github.com/google/uuid"
)

type CreateApiKeyRequestDTO struct {
	Name   string     `json:"name"   binding:"required,min=1,max=100"`
	Scopes []ApiScope `json:"scopes" binding:"required,min=1"`
}

type GetApiKeysResponseDTO struct {
	ApiKeys []*ApiKeyCredential `json:"apiKeys"`
}

// AuthenticatedKey is the principal resolved from a valid API key. It is
// passed to handlers explicitly, never through globals.
type AuthenticatedKey struct {
	KeyID          uuid.UUID  `json:"keyId"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	CreatorID      uuid.UUID  `json:"creatorId"`
	Scopes         []ApiScope `json:"scopes"`
}

// CachedCredential is the cache representation of a hash lookup result.
// IsNotFound marks negative entries so repeated probes with an unknown key
// do not hit the database.
type CachedCredential struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organizationId"`
	CreatorID      uuid.UUID  `json:"creatorId"`
	Scopes         []ApiScope `json:"scopes"`
	IsNotFound     bool       `json:"isNotFound"`
}
