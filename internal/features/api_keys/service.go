package api_keys

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chorey/internal/features/organizations/roles"
	users_models "chorey/internal/features/users/models"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	KeyPrefix = "chorey_sk_"
	KeyLength = 32

	// Bounds how long revoked or rotated keys keep authenticating on other
	// replicas after an explicit Invalidate is lost.
	credentialCacheExpiry = 5 * time.Minute
)

// CredentialRepository is the persistence surface the authenticator needs.
type CredentialRepository interface {
	CreateCredential(credential *ApiKeyCredential) error
	GetCredentialsByOrganizationID(organizationID uuid.UUID) ([]*ApiKeyCredential, error)
	GetCredentialByID(credentialID uuid.UUID) (*ApiKeyCredential, error)
	GetCredentialsByKeyHash(keyHash string) ([]*ApiKeyCredential, error)
	UpdateKeyHash(credentialID uuid.UUID, keyHash, keyPrefix string) error
	UpdateLastUsed(credentialID uuid.UUID, usedAt time.Time) error
	DeleteCredential(credentialID uuid.UUID) error
}

// CredentialCache caches hash lookup results, positive and negative.
type CredentialCache interface {
	Get(key string) *CachedCredential
	Set(key string, item *CachedCredential)
	Invalidate(key string)
}

// PermissionChecker guards credential lifecycle operations.
type PermissionChecker interface {
	HasPermission(userID uuid.UUID, organizationID uuid.UUID, permission roles.Permission) bool
}

// AuditLogWriter records credential lifecycle events.
type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, organizationID *uuid.UUID)
}

type ApiKeyService struct {
	credentialRepository CredentialRepository
	permissionChecker    PermissionChecker
	auditLogWriter       AuditLogWriter
	credentialCache      CredentialCache
	logger               *slog.Logger

	singleflight singleflight.Group // Prevents thundering herd on DB calls
}

func NewApiKeyService(
	credentialRepository CredentialRepository,
	permissionChecker PermissionChecker,
	auditLogWriter AuditLogWriter,
	credentialCache CredentialCache,
	logger *slog.Logger,
) *ApiKeyService {
	return &ApiKeyService{
		credentialRepository: credentialRepository,
		permissionChecker:    permissionChecker,
		auditLogWriter:       auditLogWriter,
		credentialCache:      credentialCache,
		logger:               logger,
	}
}

// Authenticate resolves a plaintext key to its principal. It returns nil on
// any failure: wrong prefix, no stored match, more than one stored match or
// a storage error. The caller decides the HTTP response.
func (s *ApiKeyService) Authenticate(plaintextKey string) *AuthenticatedKey {
	if !strings.HasPrefix(plaintextKey, KeyPrefix) {
		return nil
	}

	keyHash := s.hashKey(plaintextKey)

	if cached := s.credentialCache.Get(keyHash); cached != nil {
		if cached.IsNotFound {
			return nil
		}

		s.touchLastUsed(cached.ID)

		return &AuthenticatedKey{
			KeyID:          cached.ID,
			OrganizationID: cached.OrganizationID,
			CreatorID:      cached.CreatorID,
			Scopes:         cached.Scopes,
		}
	}

	result, err, _ := s.singleflight.Do(keyHash, func() (any, error) {
		return s.credentialRepository.GetCredentialsByKeyHash(keyHash)
	})
	if err != nil {
		s.logger.Error("api key hash lookup failed", slog.String("error", err.Error()))
		return nil
	}

	credentials, ok := result.([]*ApiKeyCredential)
	if !ok {
		return nil
	}

	if len(credentials) == 0 {
		// Negative entry stops repeated probes with an unknown key from
		// hitting the database.
		s.credentialCache.Set(keyHash, &CachedCredential{IsNotFound: true})
		return nil
	}

	if len(credentials) > 1 {
		// Ambiguous match is an authentication failure, never "pick first".
		// Not cached: the duplicate row is an operator problem that may be
		// fixed at any moment.
		s.logger.Error("ambiguous api key hash match",
			slog.Int("matches", len(credentials)))
		return nil
	}

	credential := credentials[0]

	s.credentialCache.Set(keyHash, &CachedCredential{
		ID:             credential.ID,
		OrganizationID: credential.OrganizationID,
		CreatorID:      credential.CreatorID,
		Scopes:         credential.Scopes,
	})

	s.touchLastUsed(credential.ID)

	return &AuthenticatedKey{
		KeyID:          credential.ID,
		OrganizationID: credential.OrganizationID,
		CreatorID:      credential.CreatorID,
		Scopes:         credential.Scopes,
	}
}

// touchLastUsed records key usage without blocking or failing the
// authentication result.
func (s *ApiKeyService) touchLastUsed(credentialID uuid.UUID) {
	go func() {
		if err := s.credentialRepository.UpdateLastUsed(credentialID, time.Now().UTC()); err != nil {
			s.logger.Error("failed to update api key last used timestamp",
				slog.String("apiKeyId", credentialID.String()),
				slog.String("error", err.Error()))
		}
	}()
}

func (s *ApiKeyService) CreateApiKey(
	organizationID uuid.UUID,
	request *CreateApiKeyRequestDTO,
	creator *users_models.User,
) (*ApiKeyCredential, error) {
	if !s.permissionChecker.HasPermission(creator.ID, organizationID, roles.PermissionManageAPIKeys) {
		return nil, errors.New("insufficient permissions to create API keys")
	}

	for _, scope := range request.Scopes {
		if !scope.IsValid() {
			return nil, fmt.Errorf("unknown API scope: %s", scope)
		}
	}

	plaintextKey, keyPrefix, keyHash, err := s.generateSecureKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	credential := &ApiKeyCredential{
		ID:             uuid.New(),
		Name:           request.Name,
		OrganizationID: organizationID,
		CreatorID:      creator.ID,
		KeyPrefix:      keyPrefix,
		KeyHash:        keyHash,
		Scopes:         request.Scopes,
	}

	if err := s.credentialRepository.CreateCredential(credential); err != nil {
		return nil, fmt.Errorf("failed to create API key: %w", err)
	}

	// Pre-warm cache so the new key authenticates immediately
	s.credentialCache.Set(keyHash, &CachedCredential{
		ID:             credential.ID,
		OrganizationID: credential.OrganizationID,
		CreatorID:      credential.CreatorID,
		Scopes:         credential.Scopes,
	})

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("API key created: %s (%s)", request.Name, keyPrefix),
		&creator.ID,
		&organizationID,
	)

	// The plaintext is returned exactly once and never stored
	credential.Key = plaintextKey

	return credential, nil
}

func (s *ApiKeyService) GetOrganizationApiKeys(
	organizationID uuid.UUID,
	user *users_models.User,
) (*GetApiKeysResponseDTO, error) {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageAPIKeys) {
		return nil, errors.New("insufficient permissions to view API keys")
	}

	credentials, err := s.credentialRepository.GetCredentialsByOrganizationID(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	return &GetApiKeysResponseDTO{ApiKeys: credentials}, nil
}

// RotateApiKey replaces the stored hash in place. Identity and scopes are
// unchanged; the old plaintext stops authenticating once the cache entry is
// invalidated.
func (s *ApiKeyService) RotateApiKey(
	organizationID uuid.UUID,
	credentialID uuid.UUID,
	user *users_models.User,
) (*ApiKeyCredential, error) {
	credential, err := s.credentialRepository.GetCredentialByID(credentialID)
	if err != nil {
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	if credential == nil || credential.OrganizationID != organizationID {
		return nil, errors.New("API key not found")
	}

	isCreator := credential.CreatorID == user.ID
	if !isCreator && !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageAPIKeys) {
		return nil, errors.New("insufficient permissions to rotate API keys")
	}

	plaintextKey, keyPrefix, keyHash, err := s.generateSecureKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	oldKeyHash := credential.KeyHash

	if err := s.credentialRepository.UpdateKeyHash(credentialID, keyHash, keyPrefix); err != nil {
		return nil, fmt.Errorf("failed to rotate API key: %w", err)
	}

	s.credentialCache.Invalidate(oldKeyHash)
	s.credentialCache.Set(keyHash, &CachedCredential{
		ID:             credential.ID,
		OrganizationID: credential.OrganizationID,
		CreatorID:      credential.CreatorID,
		Scopes:         credential.Scopes,
	})

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("API key rotated: %s (%s)", credential.Name, keyPrefix),
		&user.ID,
		&organizationID,
	)

	credential.KeyHash = keyHash
	credential.KeyPrefix = keyPrefix
	credential.Key = plaintextKey

	return credential, nil
}

func (s *ApiKeyService) DeleteApiKey(
	organizationID uuid.UUID,
	credentialID uuid.UUID,
	user *users_models.User,
) error {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageAPIKeys) {
		return errors.New("insufficient permissions to delete API keys")
	}

	credential, err := s.credentialRepository.GetCredentialByID(credentialID)
	if err != nil {
		return fmt.Errorf("failed to get API key: %w", err)
	}

	if credential == nil || credential.OrganizationID != organizationID {
		return errors.New("API key not found")
	}

	if err := s.credentialRepository.DeleteCredential(credentialID); err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}

	s.credentialCache.Invalidate(credential.KeyHash)

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("API key deleted: %s (%s)", credential.Name, credential.KeyPrefix),
		&user.ID,
		&organizationID,
	)

	return nil
}

func (s *ApiKeyService) generateSecureKey() (plaintextKey, prefix, hash string, err error) {
	keyBytes := make([]byte, KeyLength/2) // hex encoding doubles the length
	if _, err := rand.Read(keyBytes); err != nil {
		return "", "", "", err
	}

	keySuffix := hex.EncodeToString(keyBytes)
	plaintextKey = KeyPrefix + keySuffix
	prefix = KeyPrefix + keySuffix[:6] + "..."
	hash = s.hashKey(plaintextKey)

	return plaintextKey, prefix, hash, nil
}

func (s *ApiKeyService) hashKey(plaintextKey string) string {
	hasher := sha256.New()
	hasher.Write([]byte(plaintextKey))
	return hex.EncodeToString(hasher.Sum(nil))
}
