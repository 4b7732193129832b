package tasks_controllers

import (
	"net/http"
	"strconv"

	api_keys "chorey/internal/features/api_keys"
	tasks_dto "chorey/internal/features/tasks/dto"
	tasks_services "chorey/internal/features/tasks/services"
	"chorey/internal/util/rate_limit"

	"github.com/gin-gonic/gin"
)

// ExternalTaskController serves machine-to-machine endpoints authenticated
// with API keys instead of user sessions.
type ExternalTaskController struct {
	taskService *tasks_services.TaskService
	rateLimiter *rate_limit.RateLimiter
}

func (c *ExternalTaskController) RegisterRoutes(router *gin.RouterGroup, authenticator api_keys.Authenticator) {
	router.GET("/tasks",
		api_keys.RequireScopes(authenticator, api_keys.ScopeReadTasks),
		c.ListTasks)
	router.POST("/ingress",
		api_keys.RequireScopes(authenticator, api_keys.ScopeWriteTasks),
		c.IngressTask)
}

// ListTasks
// @Summary List organization tasks (API key)
// @Description Returns every task of the key's organization. Requires the read:tasks scope.
// @Tags external
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /external/tasks [get]
func (c *ExternalTaskController) ListTasks(ctx *gin.Context) {
	key, exists := api_keys.GetKeyFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if !c.allowRequest(ctx, key) {
		return
	}

	response, err := c.taskService.ListOrganizationTasks(key.OrganizationID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// IngressTask
// @Summary Create a task from an external system (API key)
// @Description Creates a task in the key's organization. Requires the write:tasks scope.
// @Tags external
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body tasks_dto.IngressTaskRequestDTO true "Task data"
// @Success 201 {object} tasks_dto.IngressTaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /external/ingress [post]
func (c *ExternalTaskController) IngressTask(ctx *gin.Context) {
	key, exists := api_keys.GetKeyFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if !c.allowRequest(ctx, key) {
		return
	}

	var request tasks_dto.IngressTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.IngressTask(key.OrganizationID, key.CreatorID, &request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, tasks_dto.IngressTaskResponseDTO{ID: task.ID})
}

// allowRequest consumes one token from the organization's bucket. A limiter
// backend failure does not reject the request.
func (c *ExternalTaskController) allowRequest(ctx *gin.Context, key *api_keys.AuthenticatedKey) bool {
	rpsLimit := c.taskService.GetOrganizationRateLimit(key.OrganizationID)

	result, err := c.rateLimiter.CheckRateLimit(key.OrganizationID, rpsLimit, 0)
	if err != nil {
		return true
	}

	if !result.Allowed {
		ctx.Header("Retry-After", strconv.Itoa(result.RetryAfterSec))
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
		ctx.Abort()
		return false
	}

	return true
}
