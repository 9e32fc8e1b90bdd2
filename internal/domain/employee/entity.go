package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentTypeFullTime EmploymentType = "full_time"
	EmploymentTypePartTime EmploymentType = "part_time"
	EmploymentTypeContract EmploymentType = "contract"
)

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)

// PayLine is a fixed monthly allowance or deduction configured on the
// employee, applied to every salary run.
type PayLine struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Employee is a worker assigned to a construction site. BaseSalary is set
// for salaried staff; hourly staff have it at zero and are paid from their
// classified hours at HourlyWage.
type Employee struct {
	ID               string
	UserID           *string
	SiteID           *string
	EmployeeCode     string
	FullName         string
	PhoneNumber      *string
	Address          *string
	HireDate         time.Time
	ResignationDate  *time.Time
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus
	HourlyWage       decimal.Decimal
	BaseSalary       decimal.Decimal
	Allowances       []PayLine
	Deductions       []PayLine
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time

	// DTO / Join
	SiteName *string
}

// Salaried reports whether the employee is paid a fixed monthly base.
func (e Employee) Salaried() bool {
	return e.BaseSalary.IsPositive()
}
