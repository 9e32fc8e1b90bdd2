package salary

import "errors"

var (
	ErrRecordNotFound     = errors.New("salary record not found")
	ErrRecordLocked       = errors.New("salary record is approved or paid")
	ErrInvalidTransition  = errors.New("invalid salary status transition")
	ErrInvalidPeriod      = errors.New("invalid salary period")
	ErrNothingToCalculate = errors.New("no finalized attendance for the period")
	ErrApprovalRequired   = errors.New("salary record must be approved first")
)
