package users_services

import (
	users_repositories "chorey/internal/features/users/repositories"
	"chorey/internal/storage"
)

var userRepository = users_repositories.NewUserRepository(storage.GetDb())
var secretKeyRepository = users_repositories.NewSecretKeyRepository(storage.GetDb())

var userService = NewUserService(userRepository, secretKeyRepository)

func GetUserService() *UserService {
	return userService
}
