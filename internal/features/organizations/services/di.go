package organizations_services

import (
	"chorey/internal/features/audit_logs"
	organizations_interfaces "chorey/internal/features/organizations/interfaces"
	organizations_repositories "chorey/internal/features/organizations/repositories"
	users_services "chorey/internal/features/users/services"
	"chorey/internal/storage"
	"chorey/internal/util/logger"
	"chorey/internal/util/rate_limit"
)

var organizationRepository = organizations_repositories.NewOrganizationRepository(storage.GetDb())
var membershipRepository = organizations_repositories.NewMembershipRepository(storage.GetDb())
var roleRepository = organizations_repositories.NewRoleRepository(storage.GetDb())

var permissionService = NewPermissionService(
	organizationRepository,
	membershipRepository,
	roleRepository,
	logger.GetLogger(),
)

var organizationService = &OrganizationService{
	organizationRepository,
	membershipRepository,
	roleRepository,
	permissionService,
	audit_logs.GetAuditLogService(),
	rate_limit.NewRateLimiter(),
	[]organizations_interfaces.OrganizationDeletionListener{},
}

var membershipService = &MembershipService{
	membershipRepository,
	users_services.GetUserService(),
	permissionService,
	audit_logs.GetAuditLogService(),
}

func GetOrganizationService() *OrganizationService {
	return organizationService
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetPermissionService() *PermissionService {
	return permissionService
}

// SetupDependencies wires cross-feature collaborators that would otherwise
// create import cycles.
func SetupDependencies() {
	audit_logs.GetAuditLogService().SetPermissionChecker(permissionService)
}
