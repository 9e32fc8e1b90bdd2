package utils

import "testing"

func TestHaversineDistance(t *testing.T) {
	// Tokyo Station to Shinjuku Station, roughly 6.2km.
	got := HaversineDistance(35.6812, 139.7671, 35.6896, 139.7006)
	if got < 5900 || got > 6300 {
		t.Errorf("HaversineDistance Tokyo-Shinjuku = %.0f m, want roughly 6100 m", got)
	}
}

func TestHaversineDistanceZero(t *testing.T) {
	if got := HaversineDistance(35.0, 139.0, 35.0, 139.0); got != 0 {
		t.Errorf("HaversineDistance same point = %f, want 0", got)
	}
}

func TestHaversineDistanceShortRange(t *testing.T) {
	// ~111m per 0.001 degree of latitude.
	got := HaversineDistance(35.0, 139.0, 35.001, 139.0)
	if got < 100 || got > 120 {
		t.Errorf("HaversineDistance 0.001 deg lat = %.1f m, want roughly 111 m", got)
	}
}
