package worktime

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePay_OvertimePremium(t *testing.T) {
	// 60 overtime minutes at wage 1500 and 125% is exactly 1875.
	settings := DefaultSettings()
	wage := decimal.NewFromInt(1500)

	pay, err := CalculatePay(HourBuckets{Regular: 480, Overtime: 60}, wage, decimal.Zero, settings, nil, nil)

	require.NoError(t, err)
	assert.True(t, pay.OvertimePay.Equal(decimal.NewFromInt(1875)), "got %s", pay.OvertimePay)
	assert.True(t, pay.NightPay.IsZero())
	assert.True(t, pay.HolidayPay.IsZero())
	assert.True(t, pay.TotalGross.Equal(decimal.NewFromInt(1875)))
}

func TestCalculatePay_AllBucketsAllowancesDeductions(t *testing.T) {
	settings := DefaultSettings()
	wage := decimal.NewFromInt(1200)

	pay, err := CalculatePay(
		HourBuckets{Regular: 480, Overtime: 120, Night: 60, Holiday: 0},
		wage,
		decimal.NewFromInt(250000),
		settings,
		[]PayLine{{Name: "site allowance", Amount: decimal.NewFromInt(15000)}},
		[]PayLine{
			{Name: "social insurance", Amount: decimal.NewFromInt(30000)},
			{Name: "income tax", Amount: decimal.NewFromInt(8000)},
		},
	)

	require.NoError(t, err)
	// overtime: 2h * 1200 * 1.25 = 3000; night: 1h * 1200 * 1.25 = 1500
	assert.True(t, pay.OvertimePay.Equal(decimal.NewFromInt(3000)))
	assert.True(t, pay.NightPay.Equal(decimal.NewFromInt(1500)))
	assert.True(t, pay.TotalAllowances.Equal(decimal.NewFromInt(15000)))
	assert.True(t, pay.TotalGross.Equal(decimal.NewFromInt(269500)))
	assert.True(t, pay.TotalDeductions.Equal(decimal.NewFromInt(38000)))
	assert.True(t, pay.NetSalary.Equal(decimal.NewFromInt(231500)))
	// net == gross - deductions, exactly
	assert.True(t, pay.NetSalary.Equal(pay.TotalGross.Sub(pay.TotalDeductions)))
}

func TestCalculatePay_HolidayPremium(t *testing.T) {
	settings := DefaultSettings()
	wage := decimal.NewFromInt(1500)

	pay, err := CalculatePay(HourBuckets{Holiday: 480}, wage, decimal.Zero, settings, nil, nil)

	require.NoError(t, err)
	// 8h * 1500 * 1.35 = 16200
	assert.True(t, pay.HolidayPay.Equal(decimal.NewFromInt(16200)), "got %s", pay.HolidayPay)
}

func TestCalculatePay_RoundsToWholeUnits(t *testing.T) {
	settings := DefaultSettings()
	wage := decimal.NewFromInt(1000)

	// 50 overtime minutes: 50/60 * 1000 * 1.25 = 1041.66... -> 1042
	pay, err := CalculatePay(HourBuckets{Overtime: 50}, wage, decimal.Zero, settings, nil, nil)

	require.NoError(t, err)
	assert.True(t, pay.OvertimePay.Equal(decimal.NewFromInt(1042)), "got %s", pay.OvertimePay)
}

func TestCalculatePay_MonotonicInOvertime(t *testing.T) {
	settings := DefaultSettings()
	wage := decimal.NewFromInt(1313)

	prev := decimal.Zero
	for overtime := 0; overtime <= 300; overtime += 10 {
		pay, err := CalculatePay(HourBuckets{Regular: 480, Overtime: overtime}, wage, decimal.NewFromInt(200000), settings, nil, nil)
		require.NoError(t, err)
		assert.True(t, pay.TotalGross.GreaterThanOrEqual(prev),
			"gross decreased at overtime=%d: %s < %s", overtime, pay.TotalGross, prev)
		prev = pay.TotalGross
	}
}

func TestCalculatePay_RejectsBadConfiguration(t *testing.T) {
	settings := DefaultSettings()

	_, err := CalculatePay(HourBuckets{}, decimal.NewFromInt(-1), decimal.Zero, settings, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	bad := settings
	bad.NightWorkRate = 90
	_, err = CalculatePay(HourBuckets{}, decimal.NewFromInt(1500), decimal.Zero, bad, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestHourlyBasePay(t *testing.T) {
	got := HourlyBasePay(HourBuckets{Regular: 480}, decimal.NewFromInt(1500))
	assert.True(t, got.Equal(decimal.NewFromInt(12000)), "got %s", got)
}
