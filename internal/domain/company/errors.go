package company

import "errors"

var (
	ErrCompanyNotFound = errors.New("company is not configured")
	ErrStaleSettings   = errors.New("settings were changed by someone else")
)
