package api_keys

import (
	"net/http"
	"strings"

	users_middleware "chorey/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApiKeyController struct {
	apiKeyService *ApiKeyService
}

func (c *ApiKeyController) RegisterRoutes(router gin.IRoutes) {
	router.POST("/organizations/:organizationId/api-keys", c.CreateApiKey)
	router.GET("/organizations/:organizationId/api-keys", c.GetApiKeys)
	router.POST("/organizations/:organizationId/api-keys/:keyId/rotate", c.RotateApiKey)
	router.DELETE("/organizations/:organizationId/api-keys/:keyId", c.DeleteApiKey)
}

// CreateApiKey
// @Summary Create an API key
// @Description Requires the manage_api_keys permission. The plaintext key is returned once and never retrievable again.
// @Tags api-keys
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param request body CreateApiKeyRequestDTO true "API key data"
// @Success 201 {object} ApiKeyCredential
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/api-keys [post]
func (c *ApiKeyController) CreateApiKey(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	organizationID, err := uuid.Parse(ctx.Param("organizationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	var request CreateApiKeyRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	credential, err := c.apiKeyService.CreateApiKey(organizationID, &request, user)
	if err != nil {
		respondWithKeyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, credential)
}

// GetApiKeys
// @Summary List API keys of an organization
// @Description Requires the manage_api_keys permission. Plaintext keys are never included.
// @Tags api-keys
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} GetApiKeysResponseDTO
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/api-keys [get]
func (c *ApiKeyController) GetApiKeys(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	organizationID, err := uuid.Parse(ctx.Param("organizationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	response, err := c.apiKeyService.GetOrganizationApiKeys(organizationID, user)
	if err != nil {
		respondWithKeyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// RotateApiKey
// @Summary Rotate an API key
// @Description Replaces the key's secret in place. Allowed for the key's creator or holders of the manage_api_keys permission.
// @Tags api-keys
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param keyId path string true "API key ID"
// @Success 200 {object} ApiKeyCredential
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/api-keys/{keyId}/rotate [post]
func (c *ApiKeyController) RotateApiKey(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	organizationID, err := uuid.Parse(ctx.Param("organizationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	credentialID, err := uuid.Parse(ctx.Param("keyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID format"})
		return
	}

	credential, err := c.apiKeyService.RotateApiKey(organizationID, credentialID, user)
	if err != nil {
		respondWithKeyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, credential)
}

// DeleteApiKey
// @Summary Delete an API key
// @Description Requires the manage_api_keys permission. The key stops authenticating immediately.
// @Tags api-keys
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param keyId path string true "API key ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/api-keys/{keyId} [delete]
func (c *ApiKeyController) DeleteApiKey(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	organizationID, err := uuid.Parse(ctx.Param("organizationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID format"})
		return
	}

	credentialID, err := uuid.Parse(ctx.Param("keyId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid API key ID format"})
		return
	}

	if err := c.apiKeyService.DeleteApiKey(organizationID, credentialID, user); err != nil {
		respondWithKeyError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "API key deleted successfully"})
}

func respondWithKeyError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case strings.Contains(message, "insufficient permissions"):
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
	case strings.Contains(message, "not found"):
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
	}
}
