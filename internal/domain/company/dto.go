package company

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
)

type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "must be a valid phone number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSettingsRequest replaces the whole work-rule snapshot. Version is the
// version the client edited; a mismatch on save is rejected as stale.
type UpdateSettingsRequest struct {
	Version  int               `json:"version"`
	Settings worktime.Settings `json:"settings"`
}

func (r *UpdateSettingsRequest) Validate() error {
	return r.Settings.Validate()
}

type CompanyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

type SettingsResponse struct {
	Settings worktime.Settings `json:"settings"`
}

type Service interface {
	Get(ctx context.Context) (CompanyResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (CompanyResponse, error)
	GetSettings(ctx context.Context) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
