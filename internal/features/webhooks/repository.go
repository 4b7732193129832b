package webhooks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

func (r *WebhookRepository) CreateWebhook(webhook *Webhook) error {
	if webhook.ID == uuid.Nil {
		webhook.ID = uuid.New()
	}

	if webhook.CreatedAt.IsZero() {
		webhook.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(webhook).Error
}

func (r *WebhookRepository) GetWebhookByID(webhookID uuid.UUID) (*Webhook, error) {
	var webhook Webhook

	err := r.db.
		Where("id = ?", webhookID).
		First(&webhook).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &webhook, nil
}

func (r *WebhookRepository) GetWebhooksByOrganization(organizationID uuid.UUID) ([]*Webhook, error) {
	var webhooks []*Webhook

	err := r.db.
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&webhooks).Error

	return webhooks, err
}

func (r *WebhookRepository) GetActiveWebhooksByOrganization(organizationID uuid.UUID) ([]*Webhook, error) {
	var webhooks []*Webhook

	err := r.db.
		Where("organization_id = ? AND is_active = ?", organizationID, true).
		Find(&webhooks).Error

	return webhooks, err
}

func (r *WebhookRepository) UpdateWebhook(webhook *Webhook) error {
	return r.db.Save(webhook).Error
}

func (r *WebhookRepository) DeleteWebhook(webhookID uuid.UUID) error {
	return r.db.Delete(&Webhook{}, webhookID).Error
}

func (r *WebhookRepository) DeleteWebhooksByOrganization(organizationID uuid.UUID) error {
	return r.db.
		Where("organization_id = ?", organizationID).
		Delete(&Webhook{}).Error
}
