package users_controllers

import (
	organizations_services "chorey/internal/features/organizations/services"
	users_services "chorey/internal/features/users/services"
)

var userController = &UserController{
	userService: users_services.GetUserService(),
}

var externalUserController = &ExternalUserController{
	userService:       users_services.GetUserService(),
	permissionService: organizations_services.GetPermissionService(),
}

func GetUserController() *UserController {
	return userController
}

func GetExternalUserController() *ExternalUserController {
	return externalUserController
}
