package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrEmployeeResigned   = errors.New("employee has resigned")
	ErrNegativeWage       = errors.New("hourly wage must be non-negative")
)
