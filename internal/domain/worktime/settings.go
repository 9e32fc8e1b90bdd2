package worktime

import (
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
)

// RoundingUnit is the granularity recorded minutes are normalized to
// before pay calculation.
type RoundingUnit string

const (
	RoundingUnitNone  RoundingUnit = "none"
	RoundingUnit15Min RoundingUnit = "15min"
	RoundingUnit30Min RoundingUnit = "30min"
	RoundingUnit1Hour RoundingUnit = "1hour"
)

// Minutes returns the unit's size in minutes, 0 for RoundingUnitNone.
func (u RoundingUnit) Minutes() int {
	switch u {
	case RoundingUnit15Min:
		return 15
	case RoundingUnit30Min:
		return 30
	case RoundingUnit1Hour:
		return 60
	default:
		return 0
	}
}

// RoundingMethod is the direction used when normalizing minutes.
type RoundingMethod string

const (
	RoundingMethodUp      RoundingMethod = "up"
	RoundingMethodDown    RoundingMethod = "down"
	RoundingMethodNearest RoundingMethod = "round"
)

// Settings is the immutable work-rule snapshot every computation receives.
// It is never read from ambient state; the settings subsystem supplies it and
// bumps Version on every admin edit so calculation results can be cached by
// (employee, period, version).
type Settings struct {
	Version int

	StandardWorkHours   int
	StandardWorkMinutes int
	LunchBreakMinutes   int
	StandardStartTime   string // "15:04"
	StandardEndTime     string

	OvertimeThresholdHours int
	OvertimeRate           int // percent, >= 100

	NightWorkStartTime string // window may wrap midnight, e.g. 22:00-05:00
	NightWorkEndTime   string
	NightWorkRate      int

	HolidayWorkRate int

	LateArrivalGraceMinutes int
	EarlyLeaveGraceMinutes  int

	ClockInWindowMinutes  int
	ClockOutWindowMinutes int

	WeeklyWorkHours      int
	MonthlyOvertimeLimit int // hours, the 36-agreement ceiling

	AutoBreakEnabled        bool
	AutoBreakThresholdHours int
	AutoBreakMinutes        int

	RoundingUnit   RoundingUnit
	RoundingMethod RoundingMethod
}

// DefaultSettings returns the initial work rules a new company starts with.
func DefaultSettings() Settings {
	return Settings{
		Version:                 1,
		StandardWorkHours:       8,
		StandardWorkMinutes:     0,
		LunchBreakMinutes:       60,
		StandardStartTime:       "09:00",
		StandardEndTime:         "18:00",
		OvertimeThresholdHours:  8,
		OvertimeRate:            125,
		NightWorkStartTime:      "22:00",
		NightWorkEndTime:        "05:00",
		NightWorkRate:           125,
		HolidayWorkRate:         135,
		LateArrivalGraceMinutes: 5,
		EarlyLeaveGraceMinutes:  5,
		ClockInWindowMinutes:    30,
		ClockOutWindowMinutes:   60,
		WeeklyWorkHours:         40,
		MonthlyOvertimeLimit:    45,
		AutoBreakEnabled:        true,
		AutoBreakThresholdHours: 6,
		AutoBreakMinutes:        45,
		RoundingUnit:            RoundingUnit15Min,
		RoundingMethod:          RoundingMethodNearest,
	}
}

// OvertimeThresholdMinutes returns the daily threshold in minutes.
func (s Settings) OvertimeThresholdMinutes() int {
	return s.OvertimeThresholdHours * 60
}

// MonthlyOvertimeLimitMinutes returns the 36-agreement ceiling in minutes.
func (s Settings) MonthlyOvertimeLimitMinutes() int {
	return s.MonthlyOvertimeLimit * 60
}

// Validate enforces the documented bounds on a settings snapshot. Rates are
// whole-percent multipliers and must be at least 100.
func (s Settings) Validate() error {
	var errs validator.ValidationErrors

	if s.StandardWorkHours < 1 || s.StandardWorkHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "standard_work_hours", Message: "must be between 1 and 24"})
	}
	if s.StandardWorkMinutes < 0 || s.StandardWorkMinutes > 59 {
		errs = append(errs, validator.ValidationError{Field: "standard_work_minutes", Message: "must be between 0 and 59"})
	}
	if s.LunchBreakMinutes < 0 || s.LunchBreakMinutes > 480 {
		errs = append(errs, validator.ValidationError{Field: "lunch_break_minutes", Message: "must be between 0 and 480"})
	}
	if _, ok := parseClock(s.StandardStartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "standard_start_time", Message: "must be HH:MM"})
	}
	if _, ok := parseClock(s.StandardEndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "standard_end_time", Message: "must be HH:MM"})
	}
	if s.OvertimeThresholdHours < 1 || s.OvertimeThresholdHours > 24 {
		errs = append(errs, validator.ValidationError{Field: "overtime_threshold_hours", Message: "must be between 1 and 24"})
	}
	for field, rate := range map[string]int{
		"overtime_rate":     s.OvertimeRate,
		"night_work_rate":   s.NightWorkRate,
		"holiday_work_rate": s.HolidayWorkRate,
	} {
		if rate < 100 || rate > 500 {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be between 100 and 500"})
		}
	}
	if _, ok := parseClock(s.NightWorkStartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "night_work_start_time", Message: "must be HH:MM"})
	}
	if _, ok := parseClock(s.NightWorkEndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "night_work_end_time", Message: "must be HH:MM"})
	}
	if s.LateArrivalGraceMinutes < 0 || s.LateArrivalGraceMinutes > 60 {
		errs = append(errs, validator.ValidationError{Field: "late_arrival_grace_minutes", Message: "must be between 0 and 60"})
	}
	if s.EarlyLeaveGraceMinutes < 0 || s.EarlyLeaveGraceMinutes > 60 {
		errs = append(errs, validator.ValidationError{Field: "early_leave_grace_minutes", Message: "must be between 0 and 60"})
	}
	if s.ClockInWindowMinutes < 0 || s.ClockInWindowMinutes > 240 {
		errs = append(errs, validator.ValidationError{Field: "clock_in_window_minutes", Message: "must be between 0 and 240"})
	}
	if s.ClockOutWindowMinutes < 0 || s.ClockOutWindowMinutes > 240 {
		errs = append(errs, validator.ValidationError{Field: "clock_out_window_minutes", Message: "must be between 0 and 240"})
	}
	if s.WeeklyWorkHours < 1 || s.WeeklyWorkHours > 168 {
		errs = append(errs, validator.ValidationError{Field: "weekly_work_hours", Message: "must be between 1 and 168"})
	}
	if s.MonthlyOvertimeLimit < 0 || s.MonthlyOvertimeLimit > 200 {
		errs = append(errs, validator.ValidationError{Field: "monthly_overtime_limit", Message: "must be between 0 and 200"})
	}
	if s.AutoBreakThresholdHours < 0 || s.AutoBreakThresholdHours > 12 {
		errs = append(errs, validator.ValidationError{Field: "auto_break_threshold_hours", Message: "must be between 0 and 12"})
	}
	if s.AutoBreakMinutes < 0 || s.AutoBreakMinutes > 120 {
		errs = append(errs, validator.ValidationError{Field: "auto_break_minutes", Message: "must be between 0 and 120"})
	}
	switch s.RoundingUnit {
	case RoundingUnitNone, RoundingUnit15Min, RoundingUnit30Min, RoundingUnit1Hour:
	default:
		errs = append(errs, validator.ValidationError{Field: "rounding_unit", Message: "must be one of none, 15min, 30min, 1hour"})
	}
	switch s.RoundingMethod {
	case RoundingMethodUp, RoundingMethodDown, RoundingMethodNearest:
	default:
		errs = append(errs, validator.ValidationError{Field: "rounding_method", Message: "must be one of up, down, round"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
