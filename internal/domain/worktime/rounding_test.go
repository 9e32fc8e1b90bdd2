package worktime

import "testing"

func TestRoundDuration(t *testing.T) {
	cases := []struct {
		minutes int
		unit    RoundingUnit
		method  RoundingMethod
		want    int
	}{
		{0, RoundingUnit15Min, RoundingMethodUp, 0},
		{0, RoundingUnit1Hour, RoundingMethodNearest, 0},
		{473, RoundingUnitNone, RoundingMethodUp, 473},
		{1, RoundingUnit15Min, RoundingMethodUp, 15},
		{16, RoundingUnit15Min, RoundingMethodUp, 30},
		{30, RoundingUnit15Min, RoundingMethodUp, 30},
		{14, RoundingUnit15Min, RoundingMethodDown, 0},
		{29, RoundingUnit15Min, RoundingMethodDown, 15},
		{7, RoundingUnit15Min, RoundingMethodNearest, 0},
		{8, RoundingUnit15Min, RoundingMethodNearest, 15},
		{22, RoundingUnit15Min, RoundingMethodNearest, 15},
		{23, RoundingUnit15Min, RoundingMethodNearest, 30},
		{44, RoundingUnit30Min, RoundingMethodNearest, 30},
		{45, RoundingUnit30Min, RoundingMethodNearest, 60},
		{489, RoundingUnit1Hour, RoundingMethodDown, 480},
		{481, RoundingUnit1Hour, RoundingMethodUp, 540},
		{510, RoundingUnit1Hour, RoundingMethodNearest, 540},
	}
	for _, c := range cases {
		got := RoundDuration(c.minutes, c.unit, c.method)
		if got != c.want {
			t.Errorf("RoundDuration(%d, %s, %s) = %d, want %d", c.minutes, c.unit, c.method, got, c.want)
		}
	}
}

func TestRoundDurationMultipleOfUnit(t *testing.T) {
	units := []RoundingUnit{RoundingUnit15Min, RoundingUnit30Min, RoundingUnit1Hour}
	methods := []RoundingMethod{RoundingMethodUp, RoundingMethodDown, RoundingMethodNearest}
	for _, u := range units {
		for _, m := range methods {
			for minutes := 0; minutes <= 600; minutes += 7 {
				got := RoundDuration(minutes, u, m)
				if got%u.Minutes() != 0 {
					t.Fatalf("RoundDuration(%d, %s, %s) = %d is not a multiple of %d", minutes, u, m, got, u.Minutes())
				}
			}
		}
	}
}

func TestRoundDurationNoneIsIdentity(t *testing.T) {
	for minutes := 0; minutes <= 600; minutes += 13 {
		for _, m := range []RoundingMethod{RoundingMethodUp, RoundingMethodDown, RoundingMethodNearest} {
			if got := RoundDuration(minutes, RoundingUnitNone, m); got != minutes {
				t.Fatalf("RoundDuration(%d, none, %s) = %d, want %d", minutes, m, got, minutes)
			}
		}
	}
}

func TestRoundBuckets(t *testing.T) {
	settings := DefaultSettings() // 15min nearest, 8h threshold

	// 9h52m worked with 1h13m overtime rounds to 9h45m total, 1h45m overtime.
	got := RoundBuckets(HourBuckets{Regular: 480, Overtime: 112, Night: 37}, settings)
	if got.Total() != 585 {
		t.Errorf("total = %d, want 585", got.Total())
	}
	if got.Regular != 480 || got.Overtime != 105 {
		t.Errorf("regular/overtime = %d/%d, want 480/105", got.Regular, got.Overtime)
	}
	if got.Night != 30 {
		t.Errorf("night = %d, want 30", got.Night)
	}
	if got.Regular+got.Overtime+got.Holiday != got.Total() {
		t.Errorf("buckets do not sum to total")
	}
}

func TestRoundBucketsHoliday(t *testing.T) {
	settings := DefaultSettings()

	got := RoundBuckets(HourBuckets{Holiday: 473}, settings)
	if got.Holiday != 480 || got.Regular != 0 || got.Overtime != 0 {
		t.Errorf("holiday buckets = %+v, want all 480 in holiday", got)
	}
}

func TestRoundBucketsShortDay(t *testing.T) {
	settings := DefaultSettings()

	// Under the threshold nothing lands in overtime.
	got := RoundBuckets(HourBuckets{Regular: 250}, settings)
	if got.Regular != 255 || got.Overtime != 0 {
		t.Errorf("regular/overtime = %d/%d, want 255/0", got.Regular, got.Overtime)
	}
}
