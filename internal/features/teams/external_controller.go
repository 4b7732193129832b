package teams

import (
	"net/http"

	api_keys "chorey/internal/features/api_keys"

	"github.com/gin-gonic/gin"
)

// ExternalTeamController serves machine-to-machine team endpoints.
type ExternalTeamController struct {
	teamService *TeamService
}

func (c *ExternalTeamController) RegisterRoutes(router *gin.RouterGroup, authenticator api_keys.Authenticator) {
	router.GET("/teams",
		api_keys.RequireScopes(authenticator, api_keys.ScopeReadTeams),
		c.ListTeams)
	router.POST("/teams",
		api_keys.RequireScopes(authenticator, api_keys.ScopeWriteTeams),
		c.CreateTeam)
}

// ListTeams
// @Summary List organization teams (API key)
// @Description Returns every team of the key's organization. Requires the read:teams scope.
// @Tags external
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} ListTeamsResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /external/teams [get]
func (c *ExternalTeamController) ListTeams(ctx *gin.Context) {
	key, exists := api_keys.GetKeyFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := c.teamService.ListOrganizationTeams(key.OrganizationID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list teams"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// CreateTeam
// @Summary Create a team (API key)
// @Description Creates a team in the key's organization. Requires the write:teams scope.
// @Tags external
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body CreateTeamRequestDTO true "Team data"
// @Success 201 {object} Team
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /external/teams [post]
func (c *ExternalTeamController) CreateTeam(ctx *gin.Context) {
	key, exists := api_keys.GetKeyFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request CreateTeamRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	team, err := c.teamService.CreateTeamFromKey(key.OrganizationID, key.CreatorID, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, team)
}
