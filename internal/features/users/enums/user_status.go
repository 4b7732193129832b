package users_enums

type UserStatus string

// Invited users exist but cannot sign in until they set a password.
const (
	UserStatusInvited  UserStatus = "INVITED"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)
