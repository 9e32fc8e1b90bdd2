package alert

import "time"

// Type classifies what labor rule an alert refers to.
type Type string

const (
	TypeOvertimeWarning   Type = "OVERTIME_WARNING"
	TypeOvertimeViolation Type = "OVERTIME_VIOLATION"
	TypeContinuousWork    Type = "CONTINUOUS_WORK"
	TypeMissingBreak      Type = "MISSING_BREAK"
	TypeLateArrival       Type = "LATE_ARRIVAL"
	TypeEarlyDeparture    Type = "EARLY_DEPARTURE"
)

// Severity orders alerts for triage.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Status is the alert lifecycle. An alert is never hard-deleted; RESOLVED is
// terminal for the instance, and a new occurrence of the same condition
// creates a new alert.
type Status string

const (
	StatusCreated  Status = "created"
	StatusRead     Status = "read"
	StatusResolved Status = "resolved"
)

// Alert is an advisory emitted when a labor-rule threshold is crossed.
type Alert struct {
	ID         string
	EmployeeID string
	SiteID     *string
	Date       time.Time // the work date the condition was observed on
	Type       Type
	Severity   Severity
	Title      string
	Message    string
	Status     Status
	ReadAt     *time.Time
	ResolvedAt *time.Time
	ResolvedBy *string
	Resolution *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// joined
	EmployeeName *string
	SiteName     *string
}

// Unresolved reports whether the alert still represents an open condition.
func (a Alert) Unresolved() bool {
	return a.Status != StatusResolved
}
