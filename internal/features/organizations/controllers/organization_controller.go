package organizations_controllers

import (
	"net/http"
	"strings"

	organizations_dto "chorey/internal/features/organizations/dto"
	"chorey/internal/features/organizations/roles"
	organizations_services "chorey/internal/features/organizations/services"
	users_middleware "chorey/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrganizationController struct {
	organizationService *organizations_services.OrganizationService
}

func (c *OrganizationController) RegisterRoutes(router gin.IRoutes) {
	router.POST("/organizations", c.CreateOrganization)
	router.GET("/organizations", c.ListOrganizations)
	router.GET("/organizations/:organizationId", c.GetOrganization)
	router.PUT("/organizations/:organizationId", c.UpdateOrganization)
	router.DELETE("/organizations/:organizationId", c.DeleteOrganization)

	router.GET("/organizations/:organizationId/roles", c.ListRoles)
	router.PUT("/organizations/:organizationId/roles", c.UpsertRole)
	router.DELETE("/organizations/:organizationId/roles/:roleId", c.DeleteRole)
}

// CreateOrganization
// @Summary Create an organization
// @Description Creates an organization and makes the caller its owner
// @Tags organizations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body organizations_dto.CreateOrganizationRequestDTO true "Organization data"
// @Success 201 {object} organizations_dto.OrganizationResponseDTO
// @Failure 400 {object} map[string]string
// @Router /organizations [post]
func (c *OrganizationController) CreateOrganization(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var request organizations_dto.CreateOrganizationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.organizationService.CreateOrganization(&request, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListOrganizations
// @Summary List organizations of the current user
// @Tags organizations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} organizations_dto.ListOrganizationsResponseDTO
// @Router /organizations [get]
func (c *OrganizationController) ListOrganizations(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	response, err := c.organizationService.GetUserOrganizations(user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetOrganization
// @Summary Get an organization
// @Tags organizations
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} organizations_models.Organization
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId} [get]
func (c *OrganizationController) GetOrganization(ctx *gin.Context) {
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

	organization, err := c.organizationService.GetOrganization(organizationID, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, organization)
}

// UpdateOrganization
// @Summary Update an organization
// @Description Requires the manage_organization permission
// @Tags organizations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param request body organizations_dto.UpdateOrganizationRequestDTO true "Fields to update"
// @Success 200 {object} organizations_models.Organization
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId} [put]
func (c *OrganizationController) UpdateOrganization(ctx *gin.Context) {
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

	var request organizations_dto.UpdateOrganizationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	organization, err := c.organizationService.UpdateOrganization(organizationID, &request, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, organization)
}

// DeleteOrganization
// @Summary Delete an organization
// @Description Only the organization owner can delete it
// @Tags organizations
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId} [delete]
func (c *OrganizationController) DeleteOrganization(ctx *gin.Context) {
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

	if err := c.organizationService.DeleteOrganization(organizationID, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Organization deleted successfully"})
}

// ListRoles
// @Summary List effective roles of an organization
// @Description Returns the built-in roles merged with the organization's custom roles
// @Tags organizations
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} organizations_dto.ListRolesResponseDTO
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/roles [get]
func (c *OrganizationController) ListRoles(ctx *gin.Context) {
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

	response, err := c.organizationService.ListRoles(organizationID, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpsertRole
// @Summary Create or replace a custom role
// @Description Requires the manage_organization permission. A custom role with a built-in ID replaces the built-in definition.
// @Tags organizations
// @Security BearerAuth
// @Accept json
// @Param organizationId path string true "Organization ID"
// @Param request body organizations_dto.UpsertRoleRequestDTO true "Role definition"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/roles [put]
func (c *OrganizationController) UpsertRole(ctx *gin.Context) {
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

	var request organizations_dto.UpsertRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.organizationService.UpsertRole(organizationID, &request, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Role saved successfully"})
}

// DeleteRole
// @Summary Delete a custom role
// @Description Requires the manage_organization permission. Deleting a custom role that overrides a built-in restores the built-in definition.
// @Tags organizations
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param roleId path string true "Role ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/roles/{roleId} [delete]
func (c *OrganizationController) DeleteRole(ctx *gin.Context) {
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

	roleID := roles.RoleID(ctx.Param("roleId"))

	if err := c.organizationService.DeleteRole(organizationID, roleID, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Role deleted successfully"})
}

// respondWithServiceError maps service errors onto HTTP statuses. Permission
// failures become 403, lookups that found nothing become 404, everything
// else is reported as a bad request.
func respondWithServiceError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case strings.Contains(message, "insufficient permissions"),
		strings.Contains(message, "only the organization owner"),
		strings.Contains(message, "cannot change your own role"),
		strings.Contains(message, "cannot remove the organization owner"):
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
	case strings.Contains(message, "not found"):
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
	}
}
