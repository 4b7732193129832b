package api_keys

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"chorey/internal/features/organizations/roles"
	users_models "chorey/internal/features/users/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialRepository struct {
	mu sync.Mutex

	credentials []*ApiKeyCredential

	hashLookupCalls int
	lastUsedCalls   int
	lastUsedID      uuid.UUID
	lastUsedDone    chan struct{}
}

func newFakeCredentialRepository() *fakeCredentialRepository {
	return &fakeCredentialRepository{lastUsedDone: make(chan struct{}, 16)}
}

func (r *fakeCredentialRepository) CreateCredential(credential *ApiKeyCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *credential
	r.credentials = append(r.credentials, &copied)
	return nil
}

func (r *fakeCredentialRepository) GetCredentialsByOrganizationID(
	organizationID uuid.UUID,
) ([]*ApiKeyCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*ApiKeyCredential
	for _, credential := range r.credentials {
		if credential.OrganizationID == organizationID {
			result = append(result, credential)
		}
	}
	return result, nil
}

func (r *fakeCredentialRepository) GetCredentialByID(credentialID uuid.UUID) (*ApiKeyCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, credential := range r.credentials {
		if credential.ID == credentialID {
			return credential, nil
		}
	}
	return nil, nil
}

func (r *fakeCredentialRepository) GetCredentialsByKeyHash(keyHash string) ([]*ApiKeyCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashLookupCalls++
	var result []*ApiKeyCredential
	for _, credential := range r.credentials {
		if credential.KeyHash == keyHash {
			result = append(result, credential)
		}
	}
	return result, nil
}

func (r *fakeCredentialRepository) UpdateKeyHash(credentialID uuid.UUID, keyHash, keyPrefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, credential := range r.credentials {
		if credential.ID == credentialID {
			credential.KeyHash = keyHash
			credential.KeyPrefix = keyPrefix
			return nil
		}
	}
	return errors.New("credential not found")
}

func (r *fakeCredentialRepository) UpdateLastUsed(credentialID uuid.UUID, usedAt time.Time) error {
	r.mu.Lock()
	r.lastUsedCalls++
	r.lastUsedID = credentialID
	r.mu.Unlock()
	r.lastUsedDone <- struct{}{}
	return nil
}

func (r *fakeCredentialRepository) DeleteCredential(credentialID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, credential := range r.credentials {
		if credential.ID == credentialID {
			r.credentials = append(r.credentials[:i], r.credentials[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCredentialRepository) getHashLookupCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hashLookupCalls
}

type fakeCredentialCache struct {
	mu      sync.Mutex
	entries map[string]*CachedCredential
}

func newFakeCredentialCache() *fakeCredentialCache {
	return &fakeCredentialCache{entries: make(map[string]*CachedCredential)}
}

func (c *fakeCredentialCache) Get(key string) *CachedCredential {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

func (c *fakeCredentialCache) Set(key string, item *CachedCredential) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = item
}

func (c *fakeCredentialCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

type noopAuditLogWriter struct{}

func (noopAuditLogWriter) WriteAuditLog(_ string, _ *uuid.UUID, _ *uuid.UUID) {}

type fakePermissionChecker struct {
	allowed map[roles.Permission]bool
}

func (p *fakePermissionChecker) HasPermission(
	_ uuid.UUID,
	_ uuid.UUID,
	permission roles.Permission,
) bool {
	return p.allowed[permission]
}

func createTestApiKeyService(
	repository *fakeCredentialRepository,
	permissions map[roles.Permission]bool,
) (*ApiKeyService, *fakeCredentialCache) {
	cache := newFakeCredentialCache()
	service := NewApiKeyService(
		repository,
		&fakePermissionChecker{allowed: permissions},
		noopAuditLogWriter{},
		cache,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return service, cache
}

func createStoredCredential(repository *fakeCredentialRepository, plaintextKey string) *ApiKeyCredential {
	hasher := sha256.New()
	hasher.Write([]byte(plaintextKey))

	credential := &ApiKeyCredential{
		ID:             uuid.New(),
		Name:           "integration",
		OrganizationID: uuid.New(),
		CreatorID:      uuid.New(),
		KeyHash:        hex.EncodeToString(hasher.Sum(nil)),
		Scopes:         []ApiScope{ScopeReadTasks, ScopeWriteTasks},
		CreatedAt:      time.Now().UTC(),
	}

	_ = repository.CreateCredential(credential)
	return credential
}

func managePermissions() map[roles.Permission]bool {
	return map[roles.Permission]bool{roles.PermissionManageAPIKeys: true}
}

func Test_Authenticate_WhenKeyHasWrongPrefix_FailsWithoutStoreLookup(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, nil)

	result := service.Authenticate("not_a_chorey_key")

	assert.Nil(t, result)
	assert.Equal(t, 0, repository.getHashLookupCalls())
}

func Test_Authenticate_WhenNoStoredHashMatches_Fails(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, nil)

	result := service.Authenticate(KeyPrefix + "0000000000000000000000000000000000000000")

	assert.Nil(t, result)
	assert.Equal(t, 1, repository.getHashLookupCalls())
}

func Test_Authenticate_WhenKeyIsUnknown_NegativeResultIsCached(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, nil)
	unknownKey := KeyPrefix + "0000000000000000000000000000000000000000"

	assert.Nil(t, service.Authenticate(unknownKey))
	assert.Nil(t, service.Authenticate(unknownKey))

	// Second probe must be answered from the cache
	assert.Equal(t, 1, repository.getHashLookupCalls())
}

func Test_Authenticate_WhenKeyIsValid_ReturnsExactPrincipal(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, nil)
	plaintextKey := KeyPrefix + "abcdef0123456789abcdef0123456789"
	credential := createStoredCredential(repository, plaintextKey)

	result := service.Authenticate(plaintextKey)

	require.NotNil(t, result)
	assert.Equal(t, credential.ID, result.KeyID)
	assert.Equal(t, credential.OrganizationID, result.OrganizationID)
	assert.Equal(t, credential.CreatorID, result.CreatorID)
	assert.Equal(t, credential.Scopes, result.Scopes)
}

func Test_Authenticate_WhenTwoRecordsShareOneHash_FailsClosed(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, nil)
	plaintextKey := KeyPrefix + "abcdef0123456789abcdef0123456789"

	first := createStoredCredential(repository, plaintextKey)
	second := createStoredCredential(repository, plaintextKey)

	// Each record alone would authenticate, together they are ambiguous
	assert.NotEqual(t, first.ID, second.ID)
	assert.Nil(t, service.Authenticate(plaintextKey))
}

func Test_Authenticate_WhenKeyIsValid_LastUsedIsRecordedAsynchronously(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, nil)
	plaintextKey := KeyPrefix + "abcdef0123456789abcdef0123456789"
	credential := createStoredCredential(repository, plaintextKey)

	result := service.Authenticate(plaintextKey)
	require.NotNil(t, result)

	select {
	case <-repository.lastUsedDone:
	case <-time.After(2 * time.Second):
		t.Fatal("last used update was never performed")
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()
	assert.Equal(t, credential.ID, repository.lastUsedID)
}

func Test_CreateApiKey_WhenUserHasManagePermission_PlaintextReturnedOnce(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, managePermissions())
	organizationID := uuid.New()
	creator := &users_models.User{ID: uuid.New()}

	credential, err := service.CreateApiKey(organizationID, &CreateApiKeyRequestDTO{
		Name:   "CI key",
		Scopes: []ApiScope{ScopeReadTasks},
	}, creator)

	require.NoError(t, err)
	assert.Contains(t, credential.Key, KeyPrefix)
	assert.Contains(t, credential.KeyPrefix, "...")
	assert.Equal(t, organizationID, credential.OrganizationID)
	assert.Equal(t, creator.ID, credential.CreatorID)

	// The stored record must not carry the plaintext
	stored, err := repository.GetCredentialByID(credential.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Key)
}

func Test_CreateApiKey_WhenUserLacksManagePermission_Rejected(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, nil)

	_, err := service.CreateApiKey(uuid.New(), &CreateApiKeyRequestDTO{
		Name:   "CI key",
		Scopes: []ApiScope{ScopeReadTasks},
	}, &users_models.User{ID: uuid.New()})

	assert.ErrorContains(t, err, "insufficient permissions")
}

func Test_CreateApiKey_WhenScopeIsUnknown_Rejected(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, managePermissions())

	_, err := service.CreateApiKey(uuid.New(), &CreateApiKeyRequestDTO{
		Name:   "CI key",
		Scopes: []ApiScope{"admin:everything"},
	}, &users_models.User{ID: uuid.New()})

	assert.ErrorContains(t, err, "unknown API scope")
}

func Test_RotateApiKey_InvalidatesOldPlaintextAndPreservesIdentity(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, managePermissions())
	creator := &users_models.User{ID: uuid.New()}

	created, err := service.CreateApiKey(uuid.New(), &CreateApiKeyRequestDTO{
		Name:   "rotating key",
		Scopes: []ApiScope{ScopeReadTeams},
	}, creator)
	require.NoError(t, err)

	oldPlaintext := created.Key

	rotated, err := service.RotateApiKey(created.OrganizationID, created.ID, creator)
	require.NoError(t, err)

	assert.Nil(t, service.Authenticate(oldPlaintext))

	result := service.Authenticate(rotated.Key)
	require.NotNil(t, result)
	assert.Equal(t, created.ID, result.KeyID)
	assert.Equal(t, created.OrganizationID, result.OrganizationID)
	assert.Equal(t, created.CreatorID, result.CreatorID)
	assert.Equal(t, []ApiScope{ScopeReadTeams}, result.Scopes)
}

func Test_RotateApiKey_WhenUserIsCreatorWithoutManagePermission_Allowed(t *testing.T) {
	repository := newFakeCredentialRepository()
	managingService, _ := createTestApiKeyService(repository, managePermissions())
	creator := &users_models.User{ID: uuid.New()}

	created, err := managingService.CreateApiKey(uuid.New(), &CreateApiKeyRequestDTO{
		Name:   "self-service key",
		Scopes: []ApiScope{ScopeReadTasks},
	}, creator)
	require.NoError(t, err)

	selfServiceService, _ := createTestApiKeyService(repository, nil)

	rotated, err := selfServiceService.RotateApiKey(created.OrganizationID, created.ID, creator)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.Key)
}

func Test_RotateApiKey_WhenUserIsNeitherCreatorNorManager_Rejected(t *testing.T) {
	repository := newFakeCredentialRepository()
	managingService, _ := createTestApiKeyService(repository, managePermissions())
	creator := &users_models.User{ID: uuid.New()}

	created, err := managingService.CreateApiKey(uuid.New(), &CreateApiKeyRequestDTO{
		Name:   "locked key",
		Scopes: []ApiScope{ScopeReadTasks},
	}, creator)
	require.NoError(t, err)

	strangerService, _ := createTestApiKeyService(repository, nil)

	_, err = strangerService.RotateApiKey(created.OrganizationID, created.ID, &users_models.User{ID: uuid.New()})
	assert.ErrorContains(t, err, "insufficient permissions")
}

func Test_DeleteApiKey_StopsSubsequentAuthentication(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, managePermissions())
	creator := &users_models.User{ID: uuid.New()}

	created, err := service.CreateApiKey(uuid.New(), &CreateApiKeyRequestDTO{
		Name:   "short-lived key",
		Scopes: []ApiScope{ScopeReadTasks},
	}, creator)
	require.NoError(t, err)

	require.NotNil(t, service.Authenticate(created.Key))

	err = service.DeleteApiKey(created.OrganizationID, created.ID, creator)
	require.NoError(t, err)

	assert.Nil(t, service.Authenticate(created.Key))
}

func Test_DeleteApiKey_WhenKeyBelongsToAnotherOrganization_NotFound(t *testing.T) {
	repository := newFakeCredentialRepository()
	service, _ := createTestApiKeyService(repository, managePermissions())
	creator := &users_models.User{ID: uuid.New()}

	created, err := service.CreateApiKey(uuid.New(), &CreateApiKeyRequestDTO{
		Name:   "tenant key",
		Scopes: []ApiScope{ScopeReadTasks},
	}, creator)
	require.NoError(t, err)

	err = service.DeleteApiKey(uuid.New(), created.ID, creator)
	assert.ErrorContains(t, err, "not found")
}
