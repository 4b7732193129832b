package teams

import (
	"net/http"
	"strings"

	users_middleware "chorey/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TeamController struct {
	teamService *TeamService
}

func (c *TeamController) RegisterRoutes(router gin.IRoutes) {
	router.POST("/organizations/:organizationId/teams", c.CreateTeam)
	router.GET("/organizations/:organizationId/teams", c.ListTeams)
	router.PUT("/organizations/:organizationId/teams/:teamId", c.UpdateTeam)
	router.DELETE("/organizations/:organizationId/teams/:teamId", c.DeleteTeam)

	router.GET("/organizations/:organizationId/teams/:teamId/members", c.GetTeamMembers)
	router.POST("/organizations/:organizationId/teams/:teamId/members", c.AddTeamMember)
	router.DELETE("/organizations/:organizationId/teams/:teamId/members/:userId", c.RemoveTeamMember)
}

// CreateTeam
// @Summary Create a team
// @Description Requires the manage_teams permission
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param request body CreateTeamRequestDTO true "Team data"
// @Success 201 {object} Team
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
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

	var request CreateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	team, err := c.teamService.CreateTeam(organizationID, &request, user)
	if err != nil {
		respondWithTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, team)
}

// ListTeams
// @Summary List teams of an organization
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} ListTeamsResponseDTO
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/teams [get]
func (c *TeamController) ListTeams(ctx *gin.Context) {
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

	response, err := c.teamService.ListTeams(organizationID, user)
	if err != nil {
		respondWithTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateTeam
// @Summary Update a team
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param teamId path string true "Team ID"
// @Param request body UpdateTeamRequestDTO true "Fields to update"
// @Success 200 {object} Team
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/teams/{teamId} [put]
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
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

	teamID, err := uuid.Parse(ctx.Param("teamId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	var request UpdateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	team, err := c.teamService.UpdateTeam(organizationID, teamID, &request, user)
	if err != nil {
		respondWithTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, team)
}

// DeleteTeam
// @Summary Delete a team
// @Tags teams
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param teamId path string true "Team ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/teams/{teamId} [delete]
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
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

	teamID, err := uuid.Parse(ctx.Param("teamId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	if err := c.teamService.DeleteTeam(organizationID, teamID, user); err != nil {
		respondWithTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Team deleted successfully"})
}

// GetTeamMembers
// @Summary List team members
// @Tags teams
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param teamId path string true "Team ID"
// @Success 200 {object} GetTeamMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/teams/{teamId}/members [get]
func (c *TeamController) GetTeamMembers(ctx *gin.Context) {
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

	teamID, err := uuid.Parse(ctx.Param("teamId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	response, err := c.teamService.GetTeamMembers(organizationID, teamID, user)
	if err != nil {
		respondWithTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddTeamMember
// @Summary Add a member to a team
// @Tags teams
// @Security BearerAuth
// @Accept json
// @Param organizationId path string true "Organization ID"
// @Param teamId path string true "Team ID"
// @Param request body AddTeamMemberRequestDTO true "Member data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/teams/{teamId}/members [post]
func (c *TeamController) AddTeamMember(ctx *gin.Context) {
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

	teamID, err := uuid.Parse(ctx.Param("teamId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	var request AddTeamMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.teamService.AddTeamMember(organizationID, teamID, &request, user); err != nil {
		respondWithTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Team member added successfully"})
}

// RemoveTeamMember
// @Summary Remove a member from a team
// @Tags teams
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param teamId path string true "Team ID"
// @Param userId path string true "Member user ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/teams/{teamId}/members/{userId} [delete]
func (c *TeamController) RemoveTeamMember(ctx *gin.Context) {
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

	teamID, err := uuid.Parse(ctx.Param("teamId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
		return
	}

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := c.teamService.RemoveTeamMember(organizationID, teamID, memberUserID, user); err != nil {
		respondWithTeamError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}

func respondWithTeamError(ctx *gin.Context, err error) {
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
