package alert

import (
	"testing"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalDate = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func monthlyInput(overtimeMinutes, consecutiveDays int) MonthlyInput {
	return MonthlyInput{
		EmployeeID:             "emp-1",
		Date:                   evalDate,
		MonthlyOvertimeMinutes: overtimeMinutes,
		ConsecutiveWorkDays:    consecutiveDays,
	}
}

func TestEvaluateMonthly_OvertimeViolation(t *testing.T) {
	settings := worktime.DefaultSettings() // 45h limit

	alerts := EvaluateMonthly(monthlyInput(46*60, 0), settings, nil)

	require.Len(t, alerts, 1)
	assert.Equal(t, TypeOvertimeViolation, alerts[0].Type)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.Equal(t, StatusCreated, alerts[0].Status)
}

func TestEvaluateMonthly_OvertimeWarningAt80Percent(t *testing.T) {
	settings := worktime.DefaultSettings()

	// 37h of a 45h limit is above the 80% line (36h).
	alerts := EvaluateMonthly(monthlyInput(37*60, 0), settings, nil)

	require.Len(t, alerts, 1)
	assert.Equal(t, TypeOvertimeWarning, alerts[0].Type)
	assert.Equal(t, SeverityHigh, alerts[0].Severity)
}

func TestEvaluateMonthly_BelowWarningLine(t *testing.T) {
	settings := worktime.DefaultSettings()

	alerts := EvaluateMonthly(monthlyInput(35*60, 0), settings, nil)
	assert.Empty(t, alerts)
}

func TestEvaluateMonthly_ViolationSupersedesWarning(t *testing.T) {
	settings := worktime.DefaultSettings()

	alerts := EvaluateMonthly(monthlyInput(50*60, 0), settings, nil)

	require.Len(t, alerts, 1)
	assert.Equal(t, TypeOvertimeViolation, alerts[0].Type)
}

func TestEvaluateMonthly_ContinuousWork(t *testing.T) {
	settings := worktime.DefaultSettings()

	alerts := EvaluateMonthly(monthlyInput(0, 7), settings, nil)

	require.Len(t, alerts, 1)
	assert.Equal(t, TypeContinuousWork, alerts[0].Type)
	assert.Equal(t, SeverityMedium, alerts[0].Severity)

	assert.Empty(t, EvaluateMonthly(monthlyInput(0, 5), settings, nil))
}

func TestEvaluateMonthly_Idempotent(t *testing.T) {
	settings := worktime.DefaultSettings()

	first := EvaluateMonthly(monthlyInput(46*60, 7), settings, nil)
	require.Len(t, first, 2)

	// Re-evaluating with the first run's alerts still open yields nothing.
	second := EvaluateMonthly(monthlyInput(46*60, 7), settings, first)
	assert.Empty(t, second)
}

func TestEvaluateMonthly_ResolvedAlertDoesNotSuppress(t *testing.T) {
	settings := worktime.DefaultSettings()

	resolved := EvaluateMonthly(monthlyInput(46*60, 0), settings, nil)
	require.Len(t, resolved, 1)
	resolved[0].Status = StatusResolved

	again := EvaluateMonthly(monthlyInput(46*60, 0), settings, resolved)
	require.Len(t, again, 1)
	assert.Equal(t, TypeOvertimeViolation, again[0].Type)
}

func TestEvaluateDaily(t *testing.T) {
	settings := worktime.DefaultSettings() // auto-break: 45min required past 6h

	alerts := EvaluateDaily(DailyInput{
		EmployeeID:        "emp-1",
		Date:              evalDate,
		WorkedMinutes:     9 * 60,
		BreakMinutes:      20,
		LateMinutes:       12,
		EarlyLeaveMinutes: 0,
	}, settings, nil)

	require.Len(t, alerts, 2)
	assert.Equal(t, TypeMissingBreak, alerts[0].Type)
	assert.Equal(t, TypeLateArrival, alerts[1].Type)
	assert.Equal(t, SeverityLow, alerts[1].Severity)
}

func TestEvaluateDaily_QuietDay(t *testing.T) {
	settings := worktime.DefaultSettings()

	alerts := EvaluateDaily(DailyInput{
		EmployeeID:    "emp-1",
		Date:          evalDate,
		WorkedMinutes: 8 * 60,
		BreakMinutes:  60,
	}, settings, nil)

	assert.Empty(t, alerts)
}
