package webhooks

import (
	"net/http"
	"strings"

	users_middleware "chorey/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WebhookController struct {
	webhookService *WebhookService
}

func (c *WebhookController) RegisterRoutes(router gin.IRoutes) {
	router.POST("/organizations/:organizationId/webhooks", c.CreateWebhook)
	router.GET("/organizations/:organizationId/webhooks", c.ListWebhooks)
	router.PUT("/organizations/:organizationId/webhooks/:webhookId", c.UpdateWebhook)
	router.DELETE("/organizations/:organizationId/webhooks/:webhookId", c.DeleteWebhook)
}

// CreateWebhook
// @Summary Create a webhook
// @Description Requires the manage_webhooks permission. The signing secret is returned once and never retrievable again.
// @Tags webhooks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param request body CreateWebhookRequestDTO true "Webhook data"
// @Success 201 {object} CreatedWebhookResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/webhooks [post]
func (c *WebhookController) CreateWebhook(ctx *gin.Context) {
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

	var request CreateWebhookRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.webhookService.CreateWebhook(organizationID, &request, user)
	if err != nil {
		respondWithWebhookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListWebhooks
// @Summary List webhooks of an organization
// @Description Requires the manage_webhooks permission. Signing secrets are never included.
// @Tags webhooks
// @Security BearerAuth
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Success 200 {object} ListWebhooksResponseDTO
// @Failure 403 {object} map[string]string
// @Router /organizations/{organizationId}/webhooks [get]
func (c *WebhookController) ListWebhooks(ctx *gin.Context) {
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

	response, err := c.webhookService.ListWebhooks(organizationID, user)
	if err != nil {
		respondWithWebhookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateWebhook
// @Summary Update a webhook
// @Tags webhooks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param organizationId path string true "Organization ID"
// @Param webhookId path string true "Webhook ID"
// @Param request body UpdateWebhookRequestDTO true "Fields to update"
// @Success 200 {object} Webhook
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/webhooks/{webhookId} [put]
func (c *WebhookController) UpdateWebhook(ctx *gin.Context) {
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

	webhookID, err := uuid.Parse(ctx.Param("webhookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook ID format"})
		return
	}

	var request UpdateWebhookRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	webhook, err := c.webhookService.UpdateWebhook(organizationID, webhookID, &request, user)
	if err != nil {
		respondWithWebhookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, webhook)
}

// DeleteWebhook
// @Summary Delete a webhook
// @Tags webhooks
// @Security BearerAuth
// @Param organizationId path string true "Organization ID"
// @Param webhookId path string true "Webhook ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organizations/{organizationId}/webhooks/{webhookId} [delete]
func (c *WebhookController) DeleteWebhook(ctx *gin.Context) {
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

	webhookID, err := uuid.Parse(ctx.Param("webhookId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook ID format"})
		return
	}

	if err := c.webhookService.DeleteWebhook(organizationID, webhookID, user); err != nil {
		respondWithWebhookError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Webhook deleted successfully"})
}

func respondWithWebhookError(ctx *gin.Context, err error) {
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
