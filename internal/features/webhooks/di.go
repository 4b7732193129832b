package webhooks

import (
	audit_logs "chorey/internal/features/audit_logs"
	organizations_services "chorey/internal/features/organizations/services"
	tasks_services "chorey/internal/features/tasks/services"
	"chorey/internal/storage"
	cache_utils "chorey/internal/util/cache"
	"chorey/internal/util/logger"
)

var webhookRepository = NewWebhookRepository(storage.GetDb())

var dispatcher = NewDispatcher(
	webhookRepository,
	cache_utils.NewValkeyQueueService(),
	logger.GetLogger(),
)

var webhookService = &WebhookService{
	webhookRepository: webhookRepository,
	permissionChecker: organizations_services.GetPermissionService(),
	auditLogService:   audit_logs.GetAuditLogService(),
	dispatcher:        dispatcher,
}

var webhookController = &WebhookController{
	webhookService: webhookService,
}

func GetWebhookService() *WebhookService {
	return webhookService
}

func GetDispatcher() *Dispatcher {
	return dispatcher
}

func GetWebhookController() *WebhookController {
	return webhookController
}

// SetupDependencies hands the webhook publisher to the tasks feature and
// registers webhook cleanup on organization deletion.
func SetupDependencies() {
	tasks_services.GetTaskService().SetWebhookPublisher(webhookService)
	organizations_services.GetOrganizationService().AddOrganizationDeletionListener(webhookService)
}
