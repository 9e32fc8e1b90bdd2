package site

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
)

type CreateSiteRequest struct {
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	GeofenceRadiusM *int     `json:"geofence_radius_m,omitempty"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{Field: "address", Message: "is required"})
	}
	errs = append(errs, validateGeofence(r.Latitude, r.Longitude, r.GeofenceRadiusM)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSiteRequest struct {
	ID              string   `json:"-"`
	Name            *string  `json:"name,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	GeofenceRadiusM *int     `json:"geofence_radius_m,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

func (r *UpdateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	errs = append(errs, validateGeofence(r.Latitude, r.Longitude, r.GeofenceRadiusM)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Geofence fields come as a unit: all three or none.
func validateGeofence(lat, lng *float64, radius *int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	set := 0
	for _, ok := range []bool{lat != nil, lng != nil, radius != nil} {
		if ok {
			set++
		}
	}
	if set != 0 && set != 3 {
		errs = append(errs, validator.ValidationError{Field: "geofence", Message: "latitude, longitude and geofence_radius_m must be set together"})
		return errs
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	if radius != nil && *radius <= 0 {
		errs = append(errs, validator.ValidationError{Field: "geofence_radius_m", Message: "must be positive"})
	}
	return errs
}

type SiteResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	GeofenceRadiusM *int     `json:"geofence_radius_m,omitempty"`
	Active          bool     `json:"active"`
}

type Service interface {
	Create(ctx context.Context, req CreateSiteRequest) (SiteResponse, error)
	Get(ctx context.Context, id string) (SiteResponse, error)
	List(ctx context.Context, activeOnly bool) ([]SiteResponse, error)
	Update(ctx context.Context, req UpdateSiteRequest) (SiteResponse, error)
	Delete(ctx context.Context, id string) error
}
