package tasks_models

import (
	"time"

	tasks_enums "chorey/internal/features/tasks/enums"

	"github.com/google/uuid"
)

type Task struct {
	ID             uuid.UUID                `json:"id"             gorm:"column:id"`
	OrganizationID uuid.UUID                `json:"organizationId" gorm:"column:organization_id"`
	TeamID         *uuid.UUID               `json:"teamId"         gorm:"column:team_id"`
	CreatorID      uuid.UUID                `json:"creatorId"      gorm:"column:creator_id"`
	AssigneeID     *uuid.UUID               `json:"assigneeId"     gorm:"column:assignee_id"`
	Title          string                   `json:"title"          gorm:"column:title"`
	Description    string                   `json:"description"    gorm:"column:description"`
	Status         tasks_enums.TaskStatus   `json:"status"         gorm:"column:status"`
	Priority       tasks_enums.TaskPriority `json:"priority"       gorm:"column:priority"`
	DueDate        *time.Time               `json:"dueDate"        gorm:"column:due_date"`
	CreatedAt      time.Time                `json:"createdAt"      gorm:"column:created_at"`
	UpdatedAt      time.Time                `json:"updatedAt"      gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsVisibleTo reports whether a user without the view-all permission can see
// this task: creators and assignees only.
func (t *Task) IsVisibleTo(userID uuid.UUID) bool {
	if t.CreatorID == userID {
		return true
	}
	return t.AssigneeID != nil && *t.AssigneeID == userID
}
