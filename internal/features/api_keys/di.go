package api_keys

import (
	"chorey/internal/cache"
	audit_logs "chorey/internal/features/audit_logs"
	organizations_services "chorey/internal/features/organizations/services"
	"chorey/internal/storage"
	cache_utils "chorey/internal/util/cache"
	"chorey/internal/util/logger"
)

var apiKeyService = NewApiKeyService(
	NewApiKeyRepository(storage.GetDb()),
	organizations_services.GetPermissionService(),
	audit_logs.GetAuditLogService(),
	cache_utils.NewCacheUtil[CachedCredential](cache.GetCache(), "chorey_apikey:").
		WithExpiry(credentialCacheExpiry),
	logger.GetLogger(),
)

var apiKeyController = &ApiKeyController{
	apiKeyService,
}

func GetApiKeyService() *ApiKeyService {
	return apiKeyService
}

func GetApiKeyController() *ApiKeyController {
	return apiKeyController
}
