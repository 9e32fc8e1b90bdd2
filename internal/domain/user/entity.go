package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access including settings and payroll
	RoleManager  Role = "manager"  // Approves attendance, handles alerts
	RoleEmployee Role = "employee" // Clocks in/out, views own records
)

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanApprove checks if user can approve attendance corrections
func (u *User) CanApprove() bool {
	return u.IsManager()
}

// CanManageSettings checks if user can edit organization settings
func (u *User) CanManageSettings() bool {
	return u.IsAdmin()
}
