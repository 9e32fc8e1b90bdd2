package user

import "context"

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Active     bool    `json:"active"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

// Service is the admin-only user management surface. Sign-in and
// registration live in the auth service.
type Service interface {
	List(ctx context.Context) ([]UserResponse, error)
	SetActive(ctx context.Context, id string, active bool) (UserResponse, error)
}
