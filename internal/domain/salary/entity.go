package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusCalculated Status = "calculated"
	StatusApproved   Status = "approved"
	StatusPaid       Status = "paid"
)

// validTransitions maps a status to the statuses it may move to.
var validTransitions = map[Status][]Status{
	StatusDraft:      {StatusCalculated},
	StatusCalculated: {StatusApproved, StatusDraft},
	StatusApproved:   {StatusPaid, StatusDraft},
	StatusPaid:       {},
}

// CanTransition reports whether a record may move from to next.
func CanTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Record is one employee's pay for one calendar month.
type Record struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int

	WorkDays        int
	AbsentDays      int
	LateDays        int
	OvertimeDays    int
	RegularMinutes  int
	OvertimeMinutes int
	NightMinutes    int
	HolidayMinutes  int

	BaseSalary      decimal.Decimal
	OvertimePay     decimal.Decimal
	NightPay        decimal.Decimal
	HolidayPay      decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalGross      decimal.Decimal
	NetSalary       decimal.Decimal

	Status          Status
	SettingsVersion int
	CalculatedAt    *time.Time
	ApprovedAt      *time.Time
	ApprovedBy      *string
	PaidAt          *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName *string
	EmployeeCode *string
}

// Locked reports whether a recalculation must skip this record.
func (r *Record) Locked() bool {
	return r.Status == StatusApproved || r.Status == StatusPaid
}
