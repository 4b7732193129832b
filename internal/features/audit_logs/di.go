package audit_logs

import (
	users_services "chorey/internal/features/users/services"
	"chorey/internal/storage"
	"chorey/internal/util/logger"
)

var auditLogRepository = NewAuditLogRepository(storage.GetDb())

var auditLogService = &AuditLogService{
	auditLogRepository: auditLogRepository,
	logger:             logger.GetLogger(),
}

var auditLogController = &AuditLogController{
	auditLogService: auditLogService,
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}

// SetupDependencies wires services that cannot be linked at construction
// time without creating an import cycle.
func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
}
