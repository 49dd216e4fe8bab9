package user

import "errors"

var (
	ErrInvalidToken             = errors.New("invalid or missing access token")
	ErrSupervisorAccessRequired = errors.New("supervisor access required")
	ErrAdminAccessRequired      = errors.New("admin access required")
	ErrSuperuserAccessRequired  = errors.New("superuser access required")
)
