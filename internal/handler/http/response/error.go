package response

import (
	"errors"
	"net/http"

	"github.com/genbaworks/kintai-backend-go/internal/domain/alert"
	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/auth"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/genbaworks/kintai-backend-go/internal/domain/site"
	"github.com/genbaworks/kintai-backend-go/internal/domain/user"
	"github.com/genbaworks/kintai-backend-go/internal/domain/worktime"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenInvalid):
		Unauthorized(w, "Token invalid")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeResigned):
		Conflict(w, "Employee has resigned")
	case errors.Is(err, employee.ErrNegativeWage):
		BadRequest(w, "Hourly wage must be non-negative", nil)

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, site.ErrSiteNameExists):
		Conflict(w, "Site name already exists")
	case errors.Is(err, site.ErrSiteInactive):
		Conflict(w, "Site is inactive")
	case errors.Is(err, site.ErrOutsideGeofence):
		Forbidden(w, "Location is outside the site geofence")
	case errors.Is(err, site.ErrInvalidGeofence):
		BadRequest(w, "Geofence requires latitude, longitude and a positive radius", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No break in progress")
	case errors.Is(err, attendance.ErrClockWindowClosed):
		BadRequest(w, "Punch is outside the allowed clock window", nil)
	case errors.Is(err, attendance.ErrRecordFinalized):
		Conflict(w, "Attendance record is already finalized")
	case errors.Is(err, attendance.ErrClockOutBeforeIn):
		BadRequest(w, "Clock out must be after clock in", nil)
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location is required for this site", nil)

	// Salary domain errors
	case errors.Is(err, salary.ErrRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrRecordLocked):
		Conflict(w, "Salary record is approved or paid")
	case errors.Is(err, salary.ErrInvalidTransition):
		Conflict(w, "Invalid salary status transition")
	case errors.Is(err, salary.ErrInvalidPeriod):
		BadRequest(w, "Invalid salary period", nil)
	case errors.Is(err, salary.ErrNothingToCalculate):
		NotFound(w, "No finalized attendance for the period")
	case errors.Is(err, salary.ErrApprovalRequired):
		Conflict(w, "Salary record must be approved first")

	// Alert domain errors
	case errors.Is(err, alert.ErrAlertNotFound):
		NotFound(w, "Alert not found")
	case errors.Is(err, alert.ErrAlreadyResolved):
		Conflict(w, "Alert is already resolved")
	case errors.Is(err, alert.ErrResolutionRequired):
		BadRequest(w, "A resolution note is required", nil)
	case errors.Is(err, alert.ErrInvalidStatusChange):
		Conflict(w, "Invalid alert status transition")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company is not configured")
	case errors.Is(err, company.ErrStaleSettings):
		Conflict(w, "Settings were changed by someone else, reload and retry")

	// Work time calculation errors
	case errors.Is(err, worktime.ErrInvalidInterval):
		BadRequest(w, "Invalid work interval", nil)
	case errors.Is(err, worktime.ErrInvalidConfiguration):
		BadRequest(w, "Invalid pay configuration", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
