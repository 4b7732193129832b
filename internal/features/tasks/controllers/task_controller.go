package tasks_controllers

import (
	"net/http"
	"strings"

	tasks_dto "chorey/internal/features/tasks/dto"
	tasks_services "chorey/internal/features/tasks/services"
	users_middleware "chorey/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func (c *TaskController) RegisterRoutes(router gin.IRoutes) {
	router.POST("/organizations/:organizationId/tasks", c.CreateTask)
	router.GET("/organizations/:organizationId/tasks", c.ListTasks)
	router.GET("/organizations/:organizationId/tasks/:taskId", c.GetTask)
	router.PUT("/organizations/:organizationId/tasks/:taskId", c.UpdateTask)
	router.DELETE("/organizations/:organizationId/tasks/:taskId", c.DeleteTask)
}

// CreateTask
// @Summary Create a task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param request body tasks_dto.CreateTaskRequestDTO true "Task data"
// @Success 201 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
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

	var request tasks_dto.CreateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.CreateTask(organizationID, &request, user)
	if err != nil {
		respondWithTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

// ListTasks
// @Summary List tasks
// @Description Holders of the view_all_tasks permission see every task; other members see only the tasks they created or are assigned to.
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} tasks_dto.ListTasksResponseDTO
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
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

	response, err := c.taskService.ListTasks(organizationID, user)
	if err != nil {
		respondWithTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetTask
// @Summary Get a task
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} tasks_models.Task
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/tasks/{taskId} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := c.taskService.GetTask(organizationID, taskID, user)
	if err != nil {
		respondWithTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// UpdateTask
// @Summary Update a task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param taskId path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskRequestDTO true "Fields to update"
// @Success 200 {object} tasks_models.Task
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/tasks/{taskId} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var request tasks_dto.UpdateTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	task, err := c.taskService.UpdateTask(organizationID, taskID, &request, user)
	if err != nil {
		respondWithTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

// DeleteTask
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/tasks/{taskId} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
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

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := c.taskService.DeleteTask(organizationID, taskID, user); err != nil {
		respondWithTaskError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondWithTaskError(ctx *gin.Context, err error) {
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
