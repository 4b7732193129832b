package tasks_services

import (
	audit_logs "chorey/internal/features/audit_logs"
	organizations_repositories "chorey/internal/features/organizations/repositories"
	organizations_services "chorey/internal/features/organizations/services"
	tasks_repositories "chorey/internal/features/tasks/repositories"
	"chorey/internal/storage"
)

var taskService = &TaskService{
	taskRepository:         tasks_repositories.NewTaskRepository(storage.GetDb()),
	permissionChecker:      organizations_services.GetPermissionService(),
	organizationRepository: organizations_repositories.NewOrganizationRepository(storage.GetDb()),
	auditLogService:        audit_logs.GetAuditLogService(),
}

func GetTaskService() *TaskService {
	return taskService
}

// SetupDependencies registers cleanup of organization tasks when an
// organization is deleted.
func SetupDependencies() {
	organizations_services.GetOrganizationService().AddOrganizationDeletionListener(taskService)
}
