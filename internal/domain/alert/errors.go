package alert

import "errors"

var (
	ErrAlertNotFound       = errors.New("alert not found")
	ErrAlreadyResolved     = errors.New("alert is already resolved")
	ErrResolutionRequired  = errors.New("a resolution note is required to resolve an alert")
	ErrInvalidStatusChange = errors.New("invalid alert status transition")
)
