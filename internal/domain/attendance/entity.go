package attendance

import (
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
)

type Status string

const (
	StatusWorking    Status = "working"
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusAbsent     Status = "absent"
)

// BreakRecord is one break interval inside an attendance record.
type BreakRecord struct {
	ID           string
	AttendanceID string
	StartTime    time.Time
	EndTime      *time.Time
	AutoInserted bool
}

// Open reports whether the break has been started but not ended.
func (b *BreakRecord) Open() bool {
	return b.EndTime == nil
}

// Record is one employee's attendance for one work date.
type Record struct {
	ID         string
	EmployeeID string
	SiteID     *string
	WorkDate   time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     Status
	IsHoliday  bool
	Note       *string

	ClockInLat  *float64
	ClockInLng  *float64
	ClockOutLat *float64
	ClockOutLng *float64

	// Rounded totals, filled when the record is closed.
	WorkMinutes     int
	OvertimeMinutes int
	NightMinutes    int
	BreakMinutes    int

	Breaks []BreakRecord

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName *string
	SiteName     *string
}

// Working reports whether the employee is clocked in without a clock out.
func (r *Record) Working() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}

// Finalized reports whether the record has a complete in/out pair.
func (r *Record) Finalized() bool {
	return r.ClockIn != nil && r.ClockOut != nil
}

// OpenBreak returns the currently running break, if any.
func (r *Record) OpenBreak() *BreakRecord {
	for i := range r.Breaks {
		if r.Breaks[i].Open() {
			return &r.Breaks[i]
		}
	}
	return nil
}

// BreakIntervals converts closed breaks into classifier intervals.
func (r *Record) BreakIntervals() []worktime.BreakInterval {
	var out []worktime.BreakInterval
	for _, b := range r.Breaks {
		if b.EndTime == nil {
			continue
		}
		out = append(out, worktime.BreakInterval{Start: b.StartTime, End: *b.EndTime})
	}
	return out
}

// DeriveStatus classifies a finalized record against the scheduled day.
// Late wins over early leave when both apply.
func DeriveStatus(clockIn, clockOut time.Time, scheduledStart, scheduledEnd time.Time, graceInMin, graceOutMin int) Status {
	late := clockIn.After(scheduledStart.Add(time.Duration(graceInMin) * time.Minute))
	early := clockOut.Before(scheduledEnd.Add(-time.Duration(graceOutMin) * time.Minute))

	switch {
	case late:
		return StatusLate
	case early:
		return StatusEarlyLeave
	default:
		return StatusPresent
	}
}
