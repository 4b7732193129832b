package organizations_models

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	Name      string    `json:"name"      gorm:"column:name"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	// Machine API throttling
	APIRateLimitPerSecond int `json:"apiRateLimitPerSecond" gorm:"column:api_rate_limit_per_second"`
}

func (Organization) TableName() string {
	return "organizations"
}
