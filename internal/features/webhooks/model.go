package webhooks

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Webhook struct {
	ID             uuid.UUID `json:"id"             gorm:"column:id"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"column:organization_id"`
	URL            string    `json:"url"            gorm:"column:url"`
	Secret         string    `json:"-"              gorm:"column:secret"` // Never expose in JSON
	EventsRaw      string    `json:"-"              gorm:"column:events"`
	IsActive       bool      `json:"isActive"       gorm:"column:is_active"`
	CreatedAt      time.Time `json:"createdAt"      gorm:"column:created_at"`

	Events []string `json:"events" gorm:"-"`
}

func (Webhook) TableName() string {
	return "webhooks"
}

func (w *Webhook) BeforeSave(_ *gorm.DB) error {
	w.EventsRaw = strings.Join(w.Events, ",")
	return nil
}

func (w *Webhook) AfterFind(_ *gorm.DB) error {
	w.Events = nil
	if w.EventsRaw == "" {
		return nil
	}
	w.Events = strings.Split(w.EventsRaw, ",")
	return nil
}

// SubscribesTo reports whether this webhook wants the event. An empty event
// list means all events.
func (w *Webhook) SubscribesTo(event string) bool {
	if len(w.Events) == 0 {
		return true
	}
	for _, subscribed := range w.Events {
		if subscribed == event {
			return true
		}
	}
	return false
}
