package worktime

import "errors"

// Work-time computation errors. Validation is fail-fast: both errors are
// raised before any computation and never alongside a partial result.
var (
	ErrInvalidInterval      = errors.New("invalid work interval: clock-out before clock-in or break outside the worked span")
	ErrInvalidConfiguration = errors.New("invalid pay configuration: negative wage or premium rate below 100%")
)
