package users_controllers

import (
	"net/http"

	api_keys "chorey/internal/features/api_keys"
	organizations_services "chorey/internal/features/organizations/services"
	users_services "chorey/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExternalUserController serves machine-to-machine user lookups.
type ExternalUserController struct {
	userService       *users_services.UserService
	permissionService *organizations_services.PermissionService
}

func (c *ExternalUserController) RegisterRoutes(router *gin.RouterGroup, authenticator api_keys.Authenticator) {
	router.GET("/users/:userId",
		api_keys.RequireScopes(authenticator, api_keys.ScopeReadUsers),
		c.GetUser)
}

// GetUser
// @Summary Get a user by ID (API key)
// @Description Returns public-safe user fields. Requires the read:users scope. Responds 403 when the user exists but is not a member of the key's organization.
// @Tags external
// @Security ApiKeyAuth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} users_dto.PublicUserDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /external/users/{userId} [get]
func (c *ExternalUserController) GetUser(ctx *gin.Context) {
	key, exists := api_keys.GetKeyFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	user, err := c.userService.GetUserByID(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	if user == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Existing users outside the key's organization respond 403, not 404:
	// cross-tenant lookups must not be conflated with missing records.
	if !c.permissionService.IsMember(userID, key.OrganizationID) {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "User is not a member of this organization"})
		return
	}

	ctx.JSON(http.StatusOK, users_services.ToPublicUser(user))
}
