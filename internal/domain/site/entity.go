package site

import "time"

// Site is a construction site employees are assigned to and clock in from.
type Site struct {
	ID              string
	Name            string
	Address         string
	Latitude        *float64
	Longitude       *float64
	GeofenceRadiusM *int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// HasGeofence reports whether clock punches at this site are location checked.
func (s *Site) HasGeofence() bool {
	return s.Latitude != nil && s.Longitude != nil && s.GeofenceRadiusM != nil && *s.GeofenceRadiusM > 0
}
