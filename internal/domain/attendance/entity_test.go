package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestDeriveStatus(t *testing.T) {
	start := at(9, 0)
	end := at(18, 0)

	cases := []struct {
		name     string
		clockIn  time.Time
		clockOut time.Time
		want     Status
	}{
		{"on time", at(8, 55), at(18, 2), StatusPresent},
		{"inside grace", at(9, 5), at(17, 56), StatusPresent},
		{"just past grace", at(9, 6), at(18, 0), StatusLate},
		{"left early", at(8, 50), at(17, 40), StatusEarlyLeave},
		{"late wins over early leave", at(9, 30), at(17, 0), StatusLate},
		{"exactly at grace boundary", at(9, 5), at(17, 55), StatusPresent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DeriveStatus(c.clockIn, c.clockOut, start, end, 5, 5)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDeriveStatusZeroGrace(t *testing.T) {
	start := at(9, 0)
	end := at(18, 0)

	assert.Equal(t, StatusLate, DeriveStatus(at(9, 1), at(18, 0), start, end, 0, 0))
	assert.Equal(t, StatusEarlyLeave, DeriveStatus(at(9, 0), at(17, 59), start, end, 0, 0))
	assert.Equal(t, StatusPresent, DeriveStatus(at(9, 0), at(18, 0), start, end, 0, 0))
}

func TestRecordWorkingAndFinalized(t *testing.T) {
	var rec Record
	assert.False(t, rec.Working())
	assert.False(t, rec.Finalized())

	in := at(9, 0)
	rec.ClockIn = &in
	assert.True(t, rec.Working())
	assert.False(t, rec.Finalized())

	out := at(18, 0)
	rec.ClockOut = &out
	assert.False(t, rec.Working())
	assert.True(t, rec.Finalized())
}

func TestOpenBreak(t *testing.T) {
	end := at(12, 30)
	rec := Record{
		Breaks: []BreakRecord{
			{ID: "b1", StartTime: at(12, 0), EndTime: &end},
			{ID: "b2", StartTime: at(15, 0)},
		},
	}

	open := rec.OpenBreak()
	require.NotNil(t, open)
	assert.Equal(t, "b2", open.ID)

	rec.Breaks = rec.Breaks[:1]
	assert.Nil(t, rec.OpenBreak())
}

func TestBreakIntervalsSkipsOpenBreaks(t *testing.T) {
	end := at(12, 45)
	rec := Record{
		Breaks: []BreakRecord{
			{StartTime: at(12, 0), EndTime: &end},
			{StartTime: at(16, 0)},
		},
	}

	intervals := rec.BreakIntervals()
	require.Len(t, intervals, 1)
	assert.Equal(t, at(12, 0), intervals[0].Start)
	assert.Equal(t, at(12, 45), intervals[0].End)
}
