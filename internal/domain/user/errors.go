package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrUserInactive          = errors.New("user account is deactivated")
	ErrAdminRequired         = errors.New("admin privilege required")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrInvalidRole           = errors.New("invalid role")
)
