package assistant

import (
	"chorey/internal/config"
	tasks_services "chorey/internal/features/tasks/services"
	"chorey/internal/util/logger"
)

var assistantService = NewAssistantService(
	NewModelClient(
		config.GetEnv().AssistantAPIURL,
		config.GetEnv().AssistantAPIKey,
		config.GetEnv().AssistantModel,
	),
	tasks_services.GetTaskService(),
	logger.GetLogger(),
)

var assistantController = &AssistantController{
	assistantService: assistantService,
}

func GetAssistantService() *AssistantService {
	return assistantService
}

func GetAssistantController() *AssistantController {
	return assistantController
}
