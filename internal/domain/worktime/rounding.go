package worktime

// RoundDuration normalizes a duration in minutes to the configured unit.
// A unit of RoundingUnitNone (or an unknown unit) returns the input
// unchanged; zero input returns zero regardless of method. The function is
// deterministic and side-effect free.
func RoundDuration(minutes int, unit RoundingUnit, method RoundingMethod) int {
	size := unit.Minutes()
	if size == 0 || minutes == 0 {
		return minutes
	}

	quotient := minutes / size
	remainder := minutes % size
	if remainder == 0 {
		return minutes
	}

	switch method {
	case RoundingMethodUp:
		return (quotient + 1) * size
	case RoundingMethodDown:
		return quotient * size
	default: // nearest, ties round up
		if remainder*2 >= size {
			return (quotient + 1) * size
		}
		return quotient * size
	}
}

// RoundBuckets normalizes a day's classified minutes to the configured unit.
// The total is rounded first and overtime re-derived from it, so the
// regular/overtime/holiday partition still sums to the rounded total.
// Night minutes are rounded independently; they overlap the other buckets.
func RoundBuckets(b HourBuckets, settings Settings) HourBuckets {
	total := RoundDuration(b.Total(), settings.RoundingUnit, settings.RoundingMethod)

	out := HourBuckets{
		Night: RoundDuration(b.Night, settings.RoundingUnit, settings.RoundingMethod),
	}
	if b.Holiday > 0 {
		out.Holiday = total
		return out
	}
	out.Overtime = total - settings.OvertimeThresholdMinutes()
	if out.Overtime < 0 {
		out.Overtime = 0
	}
	out.Regular = total - out.Overtime
	return out
}
