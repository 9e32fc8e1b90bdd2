package auth

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RegisterRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !validator.IsInSlice(r.Role, []string{"admin", "manager", "employee"}) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin, manager or employee"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangePasswordRequest struct {
	UserID      string `json:"-"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.OldPassword) {
		errs = append(errs, validator.ValidationError{Field: "old_password", Message: "is required"})
	}
	if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{Field: "new_password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`

	// Carried to the handler for the HttpOnly cookie, never serialized.
	RefreshToken     string `json:"-"`
	RefreshExpiresAt int64  `json:"-"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	Me(ctx context.Context, userID string) (UserResponse, error)
}
