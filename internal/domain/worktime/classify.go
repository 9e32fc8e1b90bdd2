package worktime

import (
	"sort"
	"time"
)

// BreakInterval is a rest period fully contained in the worked span.
type BreakInterval struct {
	Start time.Time
	End   time.Time
}

// Minutes returns the break length in whole minutes.
func (b BreakInterval) Minutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// HourBuckets is the classified outcome of one worked day, in minutes.
// Regular, Overtime and Holiday partition the worked time
// (regular+overtime+holiday == total). Night is an orthogonal axis: a night
// minute is also counted as regular or overtime, because pay applies the
// premiums independently and sums them.
type HourBuckets struct {
	Regular  int
	Overtime int
	Night    int
	Holiday  int
}

// Total returns the worked minutes the buckets were derived from.
func (h HourBuckets) Total() int {
	return h.Regular + h.Overtime + h.Holiday
}

// ClassifySegment splits the worked time between clockIn and clockOut into
// hour buckets under the supplied settings snapshot.
//
// Validation happens before any computation: clockOut must not precede
// clockIn, and every break must lie inside [clockIn, clockOut] without
// overlapping another break. A violation returns ErrInvalidInterval and no
// partial result.
//
// When isHoliday is set, every worked minute lands in the holiday bucket and
// the other buckets stay zero; holiday classification takes precedence so no
// minute is double-counted across the partitioning axes.
func ClassifySegment(clockIn, clockOut time.Time, breaks []BreakInterval, settings Settings, isHoliday bool) (HourBuckets, error) {
	if clockOut.Before(clockIn) {
		return HourBuckets{}, ErrInvalidInterval
	}

	sorted := make([]BreakInterval, len(breaks))
	copy(sorted, breaks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	breakMinutes := 0
	prevEnd := clockIn
	for _, b := range sorted {
		if b.End.Before(b.Start) || b.Start.Before(clockIn) || b.End.After(clockOut) {
			return HourBuckets{}, ErrInvalidInterval
		}
		if b.Start.Before(prevEnd) {
			return HourBuckets{}, ErrInvalidInterval
		}
		prevEnd = b.End
		breakMinutes += b.Minutes()
	}

	total := int(clockOut.Sub(clockIn)/time.Minute) - breakMinutes

	if isHoliday {
		return HourBuckets{Holiday: total}, nil
	}

	overtime := total - settings.OvertimeThresholdMinutes()
	if overtime < 0 {
		overtime = 0
	}

	return HourBuckets{
		Regular:  total - overtime,
		Overtime: overtime,
		Night:    nightMinutes(clockIn, clockOut, sorted, settings),
	}, nil
}

// nightMinutes sums the intersection of the worked intervals with the
// configured night window. The window may wrap midnight, and a shift may
// itself cross midnight, so the window is materialized for the day before
// clock-in through the day after clock-out.
func nightMinutes(clockIn, clockOut time.Time, breaks []BreakInterval, settings Settings) int {
	startMin, okStart := parseClock(settings.NightWorkStartTime)
	endMin, okEnd := parseClock(settings.NightWorkEndTime)
	if !okStart || !okEnd || startMin == endMin {
		return 0
	}

	worked := workedIntervals(clockIn, clockOut, breaks)

	total := 0
	day := clockIn.AddDate(0, 0, -1)
	last := clockOut.AddDate(0, 0, 1)
	for !day.After(last) {
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		winStart := midnight.Add(time.Duration(startMin) * time.Minute)
		winEnd := midnight.Add(time.Duration(endMin) * time.Minute)
		if endMin <= startMin {
			// wraps midnight, e.g. 22:00-05:00
			winEnd = winEnd.AddDate(0, 0, 1)
		}
		for _, iv := range worked {
			total += overlapMinutes(iv.Start, iv.End, winStart, winEnd)
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

// workedIntervals subtracts the (validated, sorted) breaks from the span.
func workedIntervals(clockIn, clockOut time.Time, breaks []BreakInterval) []BreakInterval {
	intervals := make([]BreakInterval, 0, len(breaks)+1)
	cursor := clockIn
	for _, b := range breaks {
		if b.Start.After(cursor) {
			intervals = append(intervals, BreakInterval{Start: cursor, End: b.Start})
		}
		cursor = b.End
	}
	if clockOut.After(cursor) {
		intervals = append(intervals, BreakInterval{Start: cursor, End: clockOut})
	}
	return intervals
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}
