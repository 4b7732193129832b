package teams

import (
	audit_logs "chorey/internal/features/audit_logs"
	organizations_services "chorey/internal/features/organizations/services"
	"chorey/internal/storage"
)

var teamService = &TeamService{
	teamRepository:    NewTeamRepository(storage.GetDb()),
	permissionChecker: organizations_services.GetPermissionService(),
	auditLogService:   audit_logs.GetAuditLogService(),
}

var teamController = &TeamController{
	teamService: teamService,
}

var externalTeamController = &ExternalTeamController{
	teamService: teamService,
}

func GetTeamService() *TeamService {
	return teamService
}

func GetTeamController() *TeamController {
	return teamController
}

func GetExternalTeamController() *ExternalTeamController {
	return externalTeamController
}

// SetupDependencies registers cleanup of organization teams when an
// organization is deleted.
func SetupDependencies() {
	organizations_services.GetOrganizationService().AddOrganizationDeletionListener(teamService)
}
