package api_keys

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const authenticatedKeyContextKey = "authenticatedApiKey"

// Authenticator resolves a bearer token to a principal, nil on failure.
type Authenticator interface {
	Authenticate(plaintextKey string) *AuthenticatedKey
}

// RequireScopes authenticates the bearer API key and verifies the granted
// scope set is a superset of required. Missing or invalid key responds 401,
// a valid key lacking any required scope responds 403; the inner handler
// never runs in either case.
func RequireScopes(authenticator Authenticator, required ...ApiScope) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			ctx.Abort()
			return
		}

		plaintextKey := strings.TrimPrefix(authHeader, "Bearer ")

		authenticatedKey := authenticator.Authenticate(plaintextKey)
		if authenticatedKey == nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			ctx.Abort()
			return
		}

		if !HasAllScopes(authenticatedKey.Scopes, required) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Insufficient API key scopes"})
			ctx.Abort()
			return
		}

		ctx.Set(authenticatedKeyContextKey, authenticatedKey)
		ctx.Next()
	}
}

// GetKeyFromContext returns the principal stored by RequireScopes.
func GetKeyFromContext(ctx *gin.Context) (*AuthenticatedKey, bool) {
	value, exists := ctx.Get(authenticatedKeyContextKey)
	if !exists {
		return nil, false
	}

	authenticatedKey, ok := value.(*AuthenticatedKey)
	return authenticatedKey, ok
}
