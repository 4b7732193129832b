package webhooks

import (
	"time"

	"github.com/google/uuid"
)

type CreateWebhookRequestDTO struct {
	URL    string   `json:"url"    binding:"required,url,max=2000"`
	Events []string `json:"events"`
}

type UpdateWebhookRequestDTO struct {
	URL      *string   `json:"url,omitempty" binding:"omitempty,url,max=2000"`
	Events   *[]string `json:"events,omitempty"`
	IsActive *bool     `json:"isActive,omitempty"`
}

type ListWebhooksResponseDTO struct {
	Webhooks []*Webhook `json:"webhooks"`
}

// CreatedWebhookResponseDTO carries the signing secret exactly once, at
// creation time.
type CreatedWebhookResponseDTO struct {
	Webhook *Webhook `json:"webhook"`
	Secret  string   `json:"secret"`
}

// delivery is one queued outbound call.
type delivery struct {
	WebhookID uuid.UUID `json:"webhookId"`
	URL       string    `json:"url"`
	Secret    string    `json:"secret"`
	Event     string    `json:"event"`
	Body      []byte    `json:"body"`
	QueuedAt  time.Time `json:"queuedAt"`
}

// eventEnvelope is the JSON body delivered to webhook receivers.
type eventEnvelope struct {
	Event          string    `json:"event"`
	OrganizationID uuid.UUID `json:"organizationId"`
	OccurredAt     time.Time `json:"occurredAt"`
	Data           any       `json:"data"`
}
