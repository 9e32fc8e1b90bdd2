package worktime

import (
	"testing"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	require.NoError(t, DefaultSettings().Validate())
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"rate below 100", func(s *Settings) { s.OvertimeRate = 80 }, "overtime_rate"},
		{"rate above 500", func(s *Settings) { s.HolidayWorkRate = 600 }, "holiday_work_rate"},
		{"bad start clock", func(s *Settings) { s.StandardStartTime = "9am" }, "standard_start_time"},
		{"bad night window clock", func(s *Settings) { s.NightWorkEndTime = "25:00" }, "night_work_end_time"},
		{"negative grace", func(s *Settings) { s.LateArrivalGraceMinutes = -1 }, "late_arrival_grace_minutes"},
		{"zero work hours", func(s *Settings) { s.StandardWorkHours = 0 }, "standard_work_hours"},
		{"unknown rounding unit", func(s *Settings) { s.RoundingUnit = "5min" }, "rounding_unit"},
		{"unknown rounding method", func(s *Settings) { s.RoundingMethod = "banker" }, "rounding_method"},
		{"clock window too wide", func(s *Settings) { s.ClockOutWindowMinutes = 300 }, "clock_out_window_minutes"},
		{"overtime limit too high", func(s *Settings) { s.MonthlyOvertimeLimit = 250 }, "monthly_overtime_limit"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultSettings()
			c.mutate(&s)

			err := s.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}
}

func TestThresholdHelpers(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 480, s.OvertimeThresholdMinutes())
	assert.Equal(t, 45*60, s.MonthlyOvertimeLimitMinutes())
}

func TestRoundingUnitMinutes(t *testing.T) {
	assert.Equal(t, 0, RoundingUnitNone.Minutes())
	assert.Equal(t, 15, RoundingUnit15Min.Minutes())
	assert.Equal(t, 30, RoundingUnit30Min.Minutes())
	assert.Equal(t, 60, RoundingUnit1Hour.Minutes())
}
