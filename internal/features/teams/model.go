package teams

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID             uuid.UUID `json:"id"             gorm:"column:id"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"column:organization_id"`
	Name           string    `json:"name"           gorm:"column:name"`
	Description    string    `json:"description"    gorm:"column:description"`
	CreatedAt      time.Time `json:"createdAt"      gorm:"column:created_at"`
}

func (Team) TableName() string {
	return "teams"
}

type TeamMember struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id"`
	TeamID    uuid.UUID `json:"teamId"    gorm:"column:team_id"`
	UserID    uuid.UUID `json:"userId"    gorm:"column:user_id"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
