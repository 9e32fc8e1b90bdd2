package site

import "errors"

var (
	ErrSiteNotFound    = errors.New("site not found")
	ErrSiteNameExists  = errors.New("site name already exists")
	ErrSiteInactive    = errors.New("site is inactive")
	ErrOutsideGeofence = errors.New("location is outside the site geofence")
	ErrInvalidGeofence = errors.New("geofence requires latitude, longitude and a positive radius")
)
