package audit_logs

import (
	"net/http"

	users_middleware "chorey/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditLogController struct {
	auditLogService *AuditLogService
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	auditLogs := router.Group("/audit-logs")

	auditLogs.GET("/users/:userId", c.GetUserAuditLogs)
	auditLogs.GET("/organizations/:organizationId", c.GetOrganizationAuditLogs)
}

// GetUserAuditLogs godoc
// @Summary Get audit logs for a user
// @Description Returns audit logs of the authenticated user. Users can only view their own logs.
// @Tags audit-logs
// @Security BearerAuth
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Offset"
// @Param beforeDate query string false "Only logs created before this timestamp"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /audit-logs/users/{userId} [get]
func (c *AuditLogController) GetUserAuditLogs(ctx *gin.Context) {
	user, exists := users_middleware.GetUserFromContext(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var request GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.auditLogService.GetUserAuditLogs(user.ID, targetUserID, &request)
	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetOrganizationAuditLogs godoc
// @Summary Get audit logs for an organization
// @Description Returns audit logs of an organization. Requires the manage_organization permission.
// @Tags audit-logs
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param offset query int false "Offset"
// @Param beforeDate query string false "Only logs created before this timestamp"
// @Success 200 {object} GetAuditLogsResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /audit-logs/organizations/{organizationId} [get]
func (c *AuditLogController) GetOrganizationAuditLogs(ctx *gin.Context) {
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

	var request GetAuditLogsRequest
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.auditLogService.GetOrganizationAuditLogs(user.ID, organizationID, &request)
	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
