package organizations_controllers

import (
	organizations_services "chorey/internal/features/organizations/services"
)

var organizationController = &OrganizationController{
	organizationService: organizations_services.GetOrganizationService(),
}

var membershipController = &MembershipController{
	membershipService: organizations_services.GetMembershipService(),
}

func GetOrganizationController() *OrganizationController {
	return organizationController
}

func GetMembershipController() *MembershipController {
	return membershipController
}
