package api_keys

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuthenticator struct {
	keys map[string]*AuthenticatedKey
}

func (a *staticAuthenticator) Authenticate(plaintextKey string) *AuthenticatedKey {
	return a.keys[plaintextKey]
}

func createScopedTestRouter(
	authenticator Authenticator,
	required []ApiScope,
	handlerRan *bool,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/resource", RequireScopes(authenticator, required...), func(ctx *gin.Context) {
		*handlerRan = true
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func performRequest(router *gin.Engine, authorizationHeader string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/resource", nil)
	if authorizationHeader != "" {
		request.Header.Set("Authorization", authorizationHeader)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func Test_RequireScopes_WhenAuthorizationHeaderIsMissing_Returns401(t *testing.T) {
	handlerRan := false
	router := createScopedTestRouter(
		&staticAuthenticator{},
		[]ApiScope{ScopeReadTasks},
		&handlerRan,
	)

	recorder := performRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, handlerRan)
}

func Test_RequireScopes_WhenSchemeIsNotBearer_Returns401(t *testing.T) {
	handlerRan := false
	router := createScopedTestRouter(
		&staticAuthenticator{},
		[]ApiScope{ScopeReadTasks},
		&handlerRan,
	)

	recorder := performRequest(router, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, handlerRan)
}

func Test_RequireScopes_WhenKeyIsUnknown_Returns401(t *testing.T) {
	handlerRan := false
	router := createScopedTestRouter(
		&staticAuthenticator{},
		[]ApiScope{ScopeReadTasks},
		&handlerRan,
	)

	recorder := performRequest(router, "Bearer "+KeyPrefix+"deadbeef")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, handlerRan)
}

func Test_RequireScopes_WhenGrantedScopesMissOneRequired_Returns403(t *testing.T) {
	handlerRan := false
	plaintextKey := KeyPrefix + "abc123"
	authenticator := &staticAuthenticator{keys: map[string]*AuthenticatedKey{
		plaintextKey: {
			KeyID:          uuid.New(),
			OrganizationID: uuid.New(),
			Scopes:         []ApiScope{ScopeReadTasks},
		},
	}}
	router := createScopedTestRouter(
		authenticator,
		[]ApiScope{ScopeReadTasks, ScopeWriteTasks},
		&handlerRan,
	)

	recorder := performRequest(router, "Bearer "+plaintextKey)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, handlerRan)
}

func Test_RequireScopes_WhenGrantedScopesAreSuperset_HandlerRuns(t *testing.T) {
	handlerRan := false
	plaintextKey := KeyPrefix + "abc123"
	authenticator := &staticAuthenticator{keys: map[string]*AuthenticatedKey{
		plaintextKey: {
			KeyID:          uuid.New(),
			OrganizationID: uuid.New(),
			Scopes:         []ApiScope{ScopeReadTasks, ScopeWriteTasks, ScopeReadUsers},
		},
	}}
	router := createScopedTestRouter(
		authenticator,
		[]ApiScope{ScopeReadTasks, ScopeWriteTasks},
		&handlerRan,
	)

	recorder := performRequest(router, "Bearer "+plaintextKey)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, handlerRan)
}

func Test_RequireScopes_WhenReadOnlyKeyHitsWriteRoute_Returns403(t *testing.T) {
	handlerRan := false
	plaintextKey := KeyPrefix + "readonly"
	authenticator := &staticAuthenticator{keys: map[string]*AuthenticatedKey{
		plaintextKey: {
			KeyID:          uuid.New(),
			OrganizationID: uuid.New(),
			Scopes:         []ApiScope{ScopeReadTasks},
		},
	}}
	router := createScopedTestRouter(
		authenticator,
		[]ApiScope{ScopeWriteTasks},
		&handlerRan,
	)

	recorder := performRequest(router, "Bearer "+plaintextKey)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.False(t, handlerRan)
}

func Test_RequireScopes_WhenKeyIsValid_PrincipalIsStoredInContext(t *testing.T) {
	plaintextKey := KeyPrefix + "abc123"
	expected := &AuthenticatedKey{
		KeyID:          uuid.New(),
		OrganizationID: uuid.New(),
		CreatorID:      uuid.New(),
		Scopes:         []ApiScope{ScopeReadTasks},
	}
	authenticator := &staticAuthenticator{keys: map[string]*AuthenticatedKey{plaintextKey: expected}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/resource", RequireScopes(authenticator, ScopeReadTasks), func(ctx *gin.Context) {
		stored, ok := GetKeyFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, expected, stored)
		ctx.Status(http.StatusOK)
	})

	recorder := performRequest(router, "Bearer "+plaintextKey)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func Test_HasAllScopes_WhenRequiredIsEmpty_Allows(t *testing.T) {
	assert.True(t, HasAllScopes(nil, nil))
	assert.True(t, HasAllScopes([]ApiScope{ScopeReadTasks}, nil))
}

func Test_HasAllScopes_ChecksStrictSupersetMembership(t *testing.T) {
	granted := []ApiScope{ScopeReadTasks, ScopeReadTeams}

	assert.True(t, HasAllScopes(granted, []ApiScope{ScopeReadTasks}))
	assert.True(t, HasAllScopes(granted, []ApiScope{ScopeReadTasks, ScopeReadTeams}))
	assert.False(t, HasAllScopes(granted, []ApiScope{ScopeWriteTasks}))
	assert.False(t, HasAllScopes(granted, []ApiScope{ScopeReadTasks, ScopeWriteTeams}))
}
