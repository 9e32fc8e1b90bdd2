package alert

import (
	"fmt"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
)

// MonthlyInput is the accumulated state evaluated against the 36-agreement
// thresholds. The accumulators are sequential reductions over the employee's
// daily records in date order; everything else here is order-free.
type MonthlyInput struct {
	EmployeeID             string
	SiteID                 *string
	Date                   time.Time
	MonthlyOvertimeMinutes int
	ConsecutiveWorkDays    int
}

// DailyInput captures one finalized day for the per-day advisories.
type DailyInput struct {
	EmployeeID        string
	SiteID            *string
	Date              time.Time
	WorkedMinutes     int
	BreakMinutes      int
	LateMinutes       int
	EarlyLeaveMinutes int
}

// consecutiveWorkDayLimit is the day count from which continuous work is
// flagged (six straight days means no statutory rest day that week).
const consecutiveWorkDayLimit = 6

// EvaluateMonthly emits advisories for the running monthly overtime total
// and the consecutive-workday streak. Evaluation is idempotent per
// (employee, date, type): a candidate matching an unresolved alert in
// existing is suppressed, so re-running an evaluation never duplicates an
// open condition. The function is pure; persisting the result is the
// caller's concern.
func EvaluateMonthly(in MonthlyInput, settings worktime.Settings, existing []Alert) []Alert {
	limit := settings.MonthlyOvertimeLimitMinutes()
	var out []Alert

	if limit > 0 && in.MonthlyOvertimeMinutes >= limit {
		out = append(out, Alert{
			EmployeeID: in.EmployeeID,
			SiteID:     in.SiteID,
			Date:       in.Date,
			Type:       TypeOvertimeViolation,
			Severity:   SeverityCritical,
			Title:      "Monthly overtime limit exceeded",
			Message: fmt.Sprintf("Monthly overtime has reached %s against the %dh agreement limit.",
				formatHours(in.MonthlyOvertimeMinutes), settings.MonthlyOvertimeLimit),
			Status: StatusCreated,
		})
	} else if limit > 0 && in.MonthlyOvertimeMinutes*10 >= limit*8 {
		out = append(out, Alert{
			EmployeeID: in.EmployeeID,
			SiteID:     in.SiteID,
			Date:       in.Date,
			Type:       TypeOvertimeWarning,
			Severity:   SeverityHigh,
			Title:      "Approaching monthly overtime limit",
			Message: fmt.Sprintf("Monthly overtime is at %s, 80%% of the %dh agreement limit.",
				formatHours(in.MonthlyOvertimeMinutes), settings.MonthlyOvertimeLimit),
			Status: StatusCreated,
		})
	}

	if in.ConsecutiveWorkDays >= consecutiveWorkDayLimit {
		out = append(out, Alert{
			EmployeeID: in.EmployeeID,
			SiteID:     in.SiteID,
			Date:       in.Date,
			Type:       TypeContinuousWork,
			Severity:   SeverityMedium,
			Title:      "Continuous work without a rest day",
			Message:    fmt.Sprintf("Worked %d consecutive days.", in.ConsecutiveWorkDays),
			Status:     StatusCreated,
		})
	}

	return suppressDuplicates(out, existing)
}

// EvaluateDaily emits per-day advisories for a finalized attendance record:
// a missing statutory break on a long day, late arrival, and early
// departure. Grace minutes have already been applied to the late/early
// figures by the attendance layer.
func EvaluateDaily(in DailyInput, settings worktime.Settings, existing []Alert) []Alert {
	var out []Alert

	if settings.AutoBreakThresholdHours > 0 &&
		in.WorkedMinutes >= settings.AutoBreakThresholdHours*60 &&
		in.BreakMinutes < settings.AutoBreakMinutes {
		out = append(out, Alert{
			EmployeeID: in.EmployeeID,
			SiteID:     in.SiteID,
			Date:       in.Date,
			Type:       TypeMissingBreak,
			Severity:   SeverityMedium,
			Title:      "Insufficient break",
			Message: fmt.Sprintf("Worked %s with only %d break minutes recorded.",
				formatHours(in.WorkedMinutes), in.BreakMinutes),
			Status: StatusCreated,
		})
	}

	if in.LateMinutes > 0 {
		out = append(out, Alert{
			EmployeeID: in.EmployeeID,
			SiteID:     in.SiteID,
			Date:       in.Date,
			Type:       TypeLateArrival,
			Severity:   SeverityLow,
			Title:      "Late arrival",
			Message:    fmt.Sprintf("Clocked in %d minutes late.", in.LateMinutes),
			Status:     StatusCreated,
		})
	}

	if in.EarlyLeaveMinutes > 0 {
		out = append(out, Alert{
			EmployeeID: in.EmployeeID,
			SiteID:     in.SiteID,
			Date:       in.Date,
			Type:       TypeEarlyDeparture,
			Severity:   SeverityLow,
			Title:      "Early departure",
			Message:    fmt.Sprintf("Clocked out %d minutes early.", in.EarlyLeaveMinutes),
			Status:     StatusCreated,
		})
	}

	return suppressDuplicates(out, existing)
}

// suppressDuplicates drops candidates for which an unresolved alert with the
// same (employee, date, type) already exists.
func suppressDuplicates(candidates, existing []Alert) []Alert {
	if len(candidates) == 0 || len(existing) == 0 {
		return candidates
	}

	type key struct {
		employeeID string
		date       string
		typ        Type
	}
	open := make(map[key]struct{}, len(existing))
	for _, a := range existing {
		if a.Unresolved() {
			open[key{a.EmployeeID, a.Date.Format("2006-01-02"), a.Type}] = struct{}{}
		}
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if _, dup := open[key{c.EmployeeID, c.Date.Format("2006-01-02"), c.Type}]; !dup {
			kept = append(kept, c)
		}
	}
	return kept
}

func formatHours(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
