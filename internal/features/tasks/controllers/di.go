package tasks_controllers

import (
	tasks_services "chorey/internal/features/tasks/services"
	"chorey/internal/util/rate_limit"
)

var taskController = &TaskController{
	taskService: tasks_services.GetTaskService(),
}

var externalTaskController = &ExternalTaskController{
	taskService: tasks_services.GetTaskService(),
	rateLimiter: rate_limit.NewRateLimiter(),
}

func GetTaskController() *TaskController {
	return taskController
}

func GetExternalTaskController() *ExternalTaskController {
	return externalTaskController
}
