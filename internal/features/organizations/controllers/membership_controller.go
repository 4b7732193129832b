package organizations_controllers

import (
	"net/http"

	organizations_dto "chorey/internal/features/organizations/dto"
	organizations_services "chorey/internal/features/organizations/services"
	users_middleware "chorey/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *organizations_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/organizations/:organizationId/members", c.GetMembers)
	router.POST("/organizations/:organizationId/members", c.AddMember)
	router.PUT("/organizations/:organizationId/members/:userId/role", c.ChangeMemberRole)
	router.DELETE("/organizations/:organizationId/members/:userId", c.RemoveMember)
	router.POST("/organizations/:organizationId/transfer-ownership/:userId", c.TransferOwnership)
}

// GetMembers
// @Summary List organization members
// @Tags organizations
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} organizations_dto.GetMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/members [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
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

	response, err := c.membershipService.GetMembers(organizationID, user)
	if err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add a member to an organization
// @Description Requires the manage_members permission. Assigning the owner or admin role requires the owner role.
// @Tags organizations
// @Security BearerAuth
// @Accept json
// @Param organizationId path string true "Organization ID"
// @Param request body organizations_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
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

	var request organizations_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.AddMember(organizationID, &request, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member added successfully"})
}

// ChangeMemberRole
// @Summary Change a member's role
// @Tags organizations
// @Security BearerAuth
// @Accept json
// @Param organizationId path string true "Organization ID"
// @Param userId path string true "Member user ID"
// @Param request body organizations_dto.ChangeMemberRoleRequestDTO true "New role"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/members/{userId}/role [put]
func (c *MembershipController) ChangeMemberRole(ctx *gin.Context) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var request organizations_dto.ChangeMemberRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.ChangeMemberRole(organizationID, memberUserID, &request, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member role updated successfully"})
}

// RemoveMember
// @Summary Remove a member from an organization
// @Tags organizations
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param userId path string true "Member user ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := c.membershipService.RemoveMember(organizationID, memberUserID, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// TransferOwnership
// @Summary Transfer organization ownership
// @Description The current owner becomes an admin and the target member becomes the owner.
// @Tags organizations
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param userId path string true "New owner user ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/transfer-ownership/{userId} [post]
func (c *MembershipController) TransferOwnership(ctx *gin.Context) {
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

	newOwnerUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := c.membershipService.TransferOwnership(organizationID, newOwnerUserID, user); err != nil {
		respondWithServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Ownership transferred successfully"})
}
