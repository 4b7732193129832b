package tasks_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "chorey/internal/features/audit_logs"
	organizations_interfaces "chorey/internal/features/organizations/interfaces"
	"chorey/internal/features/organizations/roles"
	tasks_dto "chorey/internal/features/tasks/dto"
	tasks_enums "chorey/internal/features/tasks/enums"
	tasks_models "chorey/internal/features/tasks/models"
	tasks_repositories "chorey/internal/features/tasks/repositories"
	users_models "chorey/internal/features/users/models"
	time_utils "chorey/internal/util/time"

	"github.com/google/uuid"
)

const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

// PermissionChecker is the slice of the role-permission system task
// operations need.
type PermissionChecker interface {
	IsMember(userID, organizationID uuid.UUID) bool
	HasPermission(userID uuid.UUID, organizationID uuid.UUID, permission roles.Permission) bool
}

// WebhookPublisher delivers task lifecycle events to subscribed endpoints.
// The concrete implementation lives in the webhooks feature and is injected
// through SetWebhookPublisher to avoid an import cycle.
type WebhookPublisher interface {
	Publish(organizationID uuid.UUID, event string, payload any)
}

type TaskService struct {
	taskRepository         *tasks_repositories.TaskRepository
	permissionChecker      PermissionChecker
	organizationRepository organizations_interfaces.OrganizationReader
	auditLogService        *audit_logs.AuditLogService
	webhookPublisher       WebhookPublisher
}

func (s *TaskService) SetWebhookPublisher(publisher WebhookPublisher) {
	s.webhookPublisher = publisher
}

func (s *TaskService) CreateTask(
	organizationID uuid.UUID,
	request *tasks_dto.CreateTaskRequestDTO,
	creator *users_models.User,
) (*tasks_models.Task, error) {
	if !s.permissionChecker.IsMember(creator.ID, organizationID) {
		return nil, errors.New("insufficient permissions to create tasks in this organization")
	}

	priority := tasks_enums.TaskPriorityMedium
	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return nil, fmt.Errorf("unknown task priority: %s", *request.Priority)
		}
		priority = *request.Priority
	}

	task := &tasks_models.Task{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		TeamID:         request.TeamID,
		CreatorID:      creator.ID,
		AssigneeID:     request.AssigneeID,
		Title:          request.Title,
		Description:    request.Description,
		Status:         tasks_enums.TaskStatusTodo,
		Priority:       priority,
		DueDate:        time_utils.ParseDueDate(request.DueDate),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishEvent(organizationID, EventTaskCreated, task)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task created: %s", task.Title),
		&creator.ID,
		&organizationID,
	)

	return task, nil
}

// ListTasks returns all organization tasks for holders of the view-all
// permission, otherwise only tasks the user created or is assigned to.
func (s *TaskService) ListTasks(
	organizationID uuid.UUID,
	user *users_models.User,
) (*tasks_dto.ListTasksResponseDTO, error) {
	if !s.permissionChecker.IsMember(user.ID, organizationID) {
		return nil, errors.New("insufficient permissions to view tasks in this organization")
	}

	var (
		tasks []*tasks_models.Task
		err   error
	)

	if s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionViewAllTasks) {
		tasks, err = s.taskRepository.GetTasksByOrganization(organizationID)
	} else {
		tasks, err = s.taskRepository.GetTasksForUser(organizationID, user.ID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) GetTask(
	organizationID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) (*tasks_models.Task, error) {
	if !s.permissionChecker.IsMember(user.ID, organizationID) {
		return nil, errors.New("insufficient permissions to view tasks in this organization")
	}

	task, err := s.loadOrganizationTask(organizationID, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsVisibleTo(user.ID) &&
		!s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionViewAllTasks) {
		return nil, errors.New("task not found")
	}

	return task, nil
}

func (s *TaskService) UpdateTask(
	organizationID uuid.UUID,
	taskID uuid.UUID,
	request *tasks_dto.UpdateTaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.GetTask(organizationID, taskID, user)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		task.Title = *request.Title
	}

	if request.Description != nil {
		task.Description = *request.Description
	}

	if request.AssigneeID != nil {
		task.AssigneeID = request.AssigneeID
	}

	if request.Status != nil {
		if !request.Status.IsValid() {
			return nil, fmt.Errorf("unknown task status: %s", *request.Status)
		}
		task.Status = *request.Status
	}

	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return nil, fmt.Errorf("unknown task priority: %s", *request.Priority)
		}
		task.Priority = *request.Priority
	}

	if request.DueDate != nil {
		task.DueDate = time_utils.ParseDueDate(request.DueDate)
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishEvent(organizationID, EventTaskUpdated, task)

	return task, nil
}

func (s *TaskService) DeleteTask(
	organizationID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) error {
	task, err := s.loadOrganizationTask(organizationID, taskID)
	if err != nil {
		return err
	}

	isCreator := task.CreatorID == user.ID
	if !isCreator && !s.permissionChecker.HasPermission(user.ID, organizationID, roles.PermissionViewAllTasks) {
		return errors.New("insufficient permissions to delete this task")
	}

	if err := s.taskRepository.DeleteTask(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishEvent(organizationID, EventTaskDeleted, task)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task deleted: %s", task.Title),
		&user.ID,
		&organizationID,
	)

	return nil
}

// ListOrganizationTasks serves machine credentials: a valid key with the
// read scope sees every task in its organization.
func (s *TaskService) ListOrganizationTasks(organizationID uuid.UUID) (*tasks_dto.ListTasksResponseDTO, error) {
	tasks, err := s.taskRepository.GetTasksByOrganization(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &tasks_dto.ListTasksResponseDTO{Tasks: tasks}, nil
}

// IngressTask creates a task on behalf of an external system. The key's
// creator acts as the task creator.
func (s *TaskService) IngressTask(
	organizationID uuid.UUID,
	creatorID uuid.UUID,
	request *tasks_dto.IngressTaskRequestDTO,
) (*tasks_models.Task, error) {
	priority := tasks_enums.TaskPriorityMedium
	if request.Priority != nil {
		if !request.Priority.IsValid() {
			return nil, fmt.Errorf("unknown task priority: %s", *request.Priority)
		}
		priority = *request.Priority
	}

	description := request.Description
	if request.Source != "" {
		description = fmt.Sprintf("%s\n\nCreated via %s", request.Description, request.Source)
	}

	task := &tasks_models.Task{
		ID:             uuid.New(),
		OrganizationID: organizationID,
		CreatorID:      creatorID,
		AssigneeID:     request.AssigneeID,
		Title:          request.Title,
		Description:    description,
		Status:         tasks_enums.TaskStatusTodo,
		Priority:       priority,
		DueDate:        time_utils.ParseDueDate(request.DueDate),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publishEvent(organizationID, EventTaskCreated, task)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task created via API: %s", task.Title),
		&creatorID,
		&organizationID,
	)

	return task, nil
}

// CompleteTaskByTitle marks the named task done on behalf of an external
// system. The title match is case-insensitive within the organization.
func (s *TaskService) CompleteTaskByTitle(
	organizationID uuid.UUID,
	completerID uuid.UUID,
	title string,
) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByTitle(organizationID, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil {
		return nil, errors.New("task not found")
	}

	task.Status = tasks_enums.TaskStatusDone

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publishEvent(organizationID, EventTaskUpdated, task)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task completed via API: %s", task.Title),
		&completerID,
		&organizationID,
	)

	return task, nil
}

// GetOrganizationRateLimit returns the per-second API request budget for an
// organization, zero when the organization cannot be resolved so the limiter
// falls back to its default.
func (s *TaskService) GetOrganizationRateLimit(organizationID uuid.UUID) int {
	organization, err := s.organizationRepository.GetOrganizationByID(organizationID)
	if err != nil || organization == nil {
		return 0
	}

	return organization.APIRateLimitPerSecond
}

func (s *TaskService) OnBeforeOrganizationDeletion(organizationID uuid.UUID) error {
	return s.taskRepository.DeleteTasksByOrganization(organizationID)
}

func (s *TaskService) loadOrganizationTask(organizationID, taskID uuid.UUID) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil || task.OrganizationID != organizationID {
		return nil, errors.New("task not found")
	}

	return task, nil
}

func (s *TaskService) publishEvent(organizationID uuid.UUID, event string, task *tasks_models.Task) {
	if s.webhookPublisher == nil {
		return
	}
	s.webhookPublisher.Publish(organizationID, event, task)
}
