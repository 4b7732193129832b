package tasks_dto

import (
	tasks_enums "chorey/internal/features/tasks/enums"
	tasks_models "chorey/internal/features/tasks/models"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title       string                    `json:"title"       binding:"required,min=1,max=500"`
	Description string                    `json:"description" binding:"max=10000"`
	TeamID      *uuid.UUID                `json:"teamId,omitempty"`
	AssigneeID  *uuid.UUID                `json:"assigneeId,omitempty"`
	Priority    *tasks_enums.TaskPriority `json:"priority,omitempty"`
	DueDate     any                       `json:"dueDate,omitempty"`
}

type UpdateTaskRequestDTO struct {
	Title       *string                   `json:"title,omitempty"       binding:"omitempty,min=1,max=500"`
	Description *string                   `json:"description,omitempty" binding:"omitempty,max=10000"`
	AssigneeID  *uuid.UUID                `json:"assigneeId,omitempty"`
	Status      *tasks_enums.TaskStatus   `json:"status,omitempty"`
	Priority    *tasks_enums.TaskPriority `json:"priority,omitempty"`
	DueDate     any                       `json:"dueDate,omitempty"`
}

type ListTasksResponseDTO struct {
	Tasks []*tasks_models.Task `json:"tasks"`
}

// IngressTaskRequestDTO is the payload external systems post to create a
// task. DueDate accepts RFC 3339 strings, date-only strings or unix epochs.
type IngressTaskRequestDTO struct {
	Title       string                    `json:"title"       binding:"required,min=1,max=500"`
	Description string                    `json:"description" binding:"max=10000"`
	AssigneeID  *uuid.UUID                `json:"assigneeId,omitempty"`
	Priority    *tasks_enums.TaskPriority `json:"priority,omitempty"`
	DueDate     any                       `json:"dueDate,omitempty"`
	Source      string                    `json:"source"      binding:"max=100"`
}

type IngressTaskResponseDTO struct {
	ID uuid.UUID `json:"id"`
}
