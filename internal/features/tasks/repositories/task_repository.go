package tasks_repositories

import (
	"time"

	tasks_models "chorey/internal/features/tasks/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(task *tasks_models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	return r.db.Create(task).Error
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := r.db.
		Where("id = ?", taskID).
		First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepository) GetTasksByOrganization(organizationID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := r.db.
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&tasks).Error

	return tasks, err
}

// GetTaskByTitle resolves a task by case-insensitive exact title within an
// organization; the most recent match wins when titles collide.
func (r *TaskRepository) GetTaskByTitle(organizationID uuid.UUID, title string) (*tasks_models.Task, error) {
	var task tasks_models.Task

	err := r.db.
		Where("organization_id = ? AND LOWER(title) = LOWER(?)", organizationID, title).
		Order("created_at DESC").
		First(&task).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

// GetTasksForUser returns only tasks the user created or is assigned to.
func (r *TaskRepository) GetTasksForUser(organizationID, userID uuid.UUID) ([]*tasks_models.Task, error) {
	var tasks []*tasks_models.Task

	err := r.db.
		Where("organization_id = ? AND (creator_id = ? OR assignee_id = ?)", organizationID, userID, userID).
		Order("created_at DESC").
		Find(&tasks).Error

	return tasks, err
}

func (r *TaskRepository) UpdateTask(task *tasks_models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	return r.db.Save(task).Error
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	return r.db.Delete(&tasks_models.Task{}, taskID).Error
}

func (r *TaskRepository) DeleteTasksByOrganization(organizationID uuid.UUID) error {
	return r.db.
		Where("organization_id = ?", organizationID).
		Delete(&tasks_models.Task{}).Error
}
