package assistant

import (
	"errors"
	"net/http"

	api_keys "chorey/internal/features/api_keys"

	"github.com/gin-gonic/gin"
)

type AssistantController struct {
	assistantService *AssistantService
}

func (c *AssistantController) RegisterRoutes(router *gin.RouterGroup, authenticator api_keys.Authenticator) {
	router.POST("/command",
		api_keys.RequireScopes(authenticator, api_keys.ScopeWriteTasks),
		c.ProcessCommand)
}

// ProcessCommand
// @Summary Process a natural-language command (API key)
// @Description Interprets the command with the assistant model and executes it in the key's organization. Requires the write:tasks scope.
// @Tags external
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body CommandRequestDTO true "Command"
// @Success 200 {object} CommandResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /external/command [post]
func (c *AssistantController) ProcessCommand(ctx *gin.Context) {
	key, exists := api_keys.GetKeyFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request CommandRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.assistantService.ProcessCommand(
		ctx.Request.Context(),
		key.OrganizationID,
		key.CreatorID,
		request.Command,
	)
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process command"})
		return
	}

	ctx.JSON(http.StatusOK, CommandResponseDTO{Response: response})
}
