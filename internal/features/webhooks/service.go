package webhooks

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	audit_logs "chorey/internal/features/audit_logs"
	"chorey/internal/features/organizations/roles"
	users_models "chorey/internal/features/users/models"

	"github.com/google/uuid"
)

// PermissionChecker guards webhook management operations.
type PermissionChecker interface {
	HasPermission(userID uuid.UUID, organizationID uuid.UUID, permission roles.Permission) bool
}

type WebhookService struct {
	webhookRepository *WebhookRepository
	permissionChecker PermissionChecker
	auditLogService   *audit_logs.AuditLogService
	dispatcher        *Dispatcher
}

func (s *WebhookService) CreateWebhook(
	organizationID uuid.UUID,
	request *CreateWebhookRequestDTO,
	creator *users_models.User,
) (*CreatedWebhookResponseDTO, error) {
	if !s.permissionChecker.HasPermission(creator.ID, organizationID, roles.PermissionManageWebhooks) {
		return nil, errors.New("insufficient permissions to manage webhooks")
	}

	secret, err := generateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate webhook secret: %w", err)
	}

	webhook := &Webhook{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		URL:            request.URL,
		Secret:         secret,
		Events:         request.Events,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.webhookRepository.CreateWebhook(webhook); err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Webhook created: %s", webhook.URL),
		&creator.ID,
		&organizationID,
	)

	// The signing secret is returned once so the receiver can verify
	// deliveries; it is not retrievable afterwards.
	return &CreatedWebhookResponseDTO{Webhook: webhook, Secret: secret}, nil
}

func (s *WebhookService) ListWebhooks(
	organizationID uuid.UUID,
	user *users_models.User,
) (*ListWebhooksResponseDTO, error) {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageWebhooks) {
		return nil, errors.New("insufficient permissions to manage webhooks")
	}

	webhooks, err := s.webhookRepository.GetWebhooksByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhooks: %w", err)
	}

	return &ListWebhooksResponseDTO{Webhooks: webhooks}, nil
}

func (s *WebhookService) UpdateWebhook(
	organizationID uuid.UUID,
	webhookID uuid.UUID,
	request *UpdateWebhookRequestDTO,
	user *users_models.User,
) (*Webhook, error) {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageWebhooks) {
		return nil, errors.New("insufficient permissions to manage webhooks")
	}

	webhook, err := s.loadOrganizationWebhook(organizationID, webhookID)
	if err != nil {
		return nil, err
	}

	if request.URL != nil {
		webhook.URL = *request.URL
	}

	if request.Events != nil {
		webhook.Events = *request.Events
	}

	if request.IsActive != nil {
		webhook.IsActive = *request.IsActive
	}

	if err := s.webhookRepository.UpdateWebhook(webhook); err != nil {
		return nil, fmt.Errorf("failed to update webhook: %w", err)
	}

	return webhook, nil
}

func (s *WebhookService) DeleteWebhook(
	organizationID uuid.UUID,
	webhookID uuid.UUID,
	user *users_models.User,
) error {
	if !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionManageWebhooks) {
		return errors.New("insufficient permissions to manage webhooks")
	}

	webhook, err := s.loadOrganizationWebhook(organizationID, webhookID)
	if err != nil {
		return err
	}

	if err := s.webhookRepository.DeleteWebhook(webhookID); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Webhook deleted: %s", webhook.URL),
		&user.ID,
		&organizationID,
	)

	return nil
}

// Publish fans an event out to every active subscribed webhook of the
// organization. Delivery is queued; a lookup failure is logged by the
// dispatcher and never surfaces to the event source.
func (s *WebhookService) Publish(organizationID uuid.UUID, event string, payload any) {
	s.dispatcher.Enqueue(organizationID, event, payload)
}

func (s *WebhookService) OnBeforeOrganizationDeletion(organizationID uuid.UUID) error {
	return s.webhookRepository.DeleteWebhooksByOrganization(organizationID)
}

func (s *WebhookService) loadOrganizationWebhook(organizationID, webhookID uuid.UUID) (*Webhook, error) {
	webhook, err := s.webhookRepository.GetWebhookByID(webhookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook: %w", err)
	}

	if webhook == nil || webhook.OrganizationID != organizationID {
		return nil, errors.New("webhook not found")
	}

	return webhook, nil
}

func generateSecret() (string, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(secretBytes), nil
}
