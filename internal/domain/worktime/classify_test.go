package worktime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

func TestClassifySegment_StandardDayWithOvertime(t *testing.T) {
	// 09:00-19:00 with a one-hour lunch, 8h threshold: 540 worked,
	// 480 regular, 60 overtime, no night overlap.
	settings := DefaultSettings()

	buckets, err := ClassifySegment(day(9, 0), day(19, 0), []BreakInterval{
		{Start: day(12, 0), End: day(13, 0)},
	}, settings, false)

	require.NoError(t, err)
	assert.Equal(t, 540, buckets.Total())
	assert.Equal(t, 480, buckets.Regular)
	assert.Equal(t, 60, buckets.Overtime)
	assert.Equal(t, 0, buckets.Night)
	assert.Equal(t, 0, buckets.Holiday)
}

func TestClassifySegment_WithinThreshold(t *testing.T) {
	settings := DefaultSettings()

	buckets, err := ClassifySegment(day(9, 0), day(17, 0), []BreakInterval{
		{Start: day(12, 0), End: day(13, 0)},
	}, settings, false)

	require.NoError(t, err)
	assert.Equal(t, 420, buckets.Regular)
	assert.Equal(t, 0, buckets.Overtime)
}

func TestClassifySegment_NightShiftAcrossMidnight(t *testing.T) {
	// 20:00 to 06:00 next day, one hour break at midnight. Worked 540.
	// Night window 22:00-05:00 intersects 22:00-24:00 and 01:00-05:00.
	settings := DefaultSettings()
	clockIn := day(20, 0)
	clockOut := day(20, 0).Add(10 * time.Hour)

	buckets, err := ClassifySegment(clockIn, clockOut, []BreakInterval{
		{Start: day(23, 59).Add(time.Minute), End: day(23, 59).Add(61 * time.Minute)},
	}, settings, false)

	require.NoError(t, err)
	assert.Equal(t, 540, buckets.Total())
	assert.Equal(t, 480, buckets.Regular)
	assert.Equal(t, 60, buckets.Overtime)
	assert.Equal(t, 360, buckets.Night)
}

func TestClassifySegment_NightAndOvertimeAreOrthogonal(t *testing.T) {
	// 13:00-23:00 without breaks: 600 worked, 120 overtime. The final hour
	// (22:00-23:00) is night and also part of the overtime tail.
	settings := DefaultSettings()

	buckets, err := ClassifySegment(day(13, 0), day(23, 0), nil, settings, false)

	require.NoError(t, err)
	assert.Equal(t, 480, buckets.Regular)
	assert.Equal(t, 120, buckets.Overtime)
	assert.Equal(t, 60, buckets.Night)
	assert.Equal(t, 600, buckets.Total())
}

func TestClassifySegment_Holiday(t *testing.T) {
	settings := DefaultSettings()

	buckets, err := ClassifySegment(day(9, 0), day(19, 0), []BreakInterval{
		{Start: day(12, 0), End: day(13, 0)},
	}, settings, true)

	require.NoError(t, err)
	assert.Equal(t, 540, buckets.Holiday)
	assert.Equal(t, 0, buckets.Regular)
	assert.Equal(t, 0, buckets.Overtime)
	assert.Equal(t, 0, buckets.Night)
	assert.Equal(t, 540, buckets.Total())
}

func TestClassifySegment_InvalidIntervals(t *testing.T) {
	settings := DefaultSettings()

	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut time.Time
		breaks   []BreakInterval
	}{
		{"clock-out before clock-in", day(18, 0), day(9, 0), nil},
		{"break before clock-in", day(9, 0), day(18, 0), []BreakInterval{{Start: day(8, 0), End: day(8, 30)}}},
		{"break after clock-out", day(9, 0), day(18, 0), []BreakInterval{{Start: day(17, 45), End: day(18, 15)}}},
		{"inverted break", day(9, 0), day(18, 0), []BreakInterval{{Start: day(13, 0), End: day(12, 0)}}},
		{"overlapping breaks", day(9, 0), day(18, 0), []BreakInterval{
			{Start: day(12, 0), End: day(13, 0)},
			{Start: day(12, 30), End: day(14, 0)},
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ClassifySegment(c.clockIn, c.clockOut, c.breaks, settings, false)
			assert.ErrorIs(t, err, ErrInvalidInterval)
		})
	}
}

func TestClassifySegment_PartitionInvariant(t *testing.T) {
	settings := DefaultSettings()
	spans := []struct {
		in, out time.Time
		breaks  []BreakInterval
	}{
		{day(6, 0), day(15, 0), nil},
		{day(9, 0), day(21, 30), []BreakInterval{{Start: day(12, 0), End: day(12, 45)}}},
		{day(22, 0), day(22, 0).Add(8 * time.Hour), nil},
	}
	for _, s := range spans {
		buckets, err := ClassifySegment(s.in, s.out, s.breaks, settings, false)
		require.NoError(t, err)

		breakMins := 0
		for _, b := range s.breaks {
			breakMins += b.Minutes()
		}
		worked := int(s.out.Sub(s.in)/time.Minute) - breakMins
		assert.Equal(t, worked, buckets.Regular+buckets.Overtime+buckets.Holiday)
		assert.Zero(t, buckets.Holiday)
	}
}
