package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("not clocked in")
	ErrAlreadyClockedOut = errors.New("already clocked out")
	ErrBreakAlreadyOpen  = errors.New("a break is already in progress")
	ErrNoOpenBreak       = errors.New("no break in progress")
	ErrClockWindowClosed = errors.New("punch is outside the allowed clock window")
	ErrRecordFinalized   = errors.New("attendance record is already finalized")
	ErrClockOutBeforeIn  = errors.New("clock out must be after clock in")
	ErrLocationRequired  = errors.New("location is required for this site")
)
