package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/alert"
	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/domain/employee"
	"github.com/jackc/pgx/v5"
)

type AttendanceJobs struct {
	attendanceRepo    attendance.Repository
	employeeRepo      employee.Repository
	companyRepo       company.Repository
	attendanceService attendance.Service
	alertService      alert.Service
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	companyRepo company.Repository,
	attendanceService attendance.Service,
	alertService alert.Service,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:    attendanceRepo,
		employeeRepo:      employeeRepo,
		companyRepo:       companyRepo,
		attendanceService: attendanceService,
		alertService:      alertService,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_open_records", 1*time.Hour, j.AutoCloseOpenRecords)
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
	scheduler.AddJob("evaluate_alerts", 1*time.Hour, j.EvaluateAlerts)
}

// AutoCloseOpenRecords closes records whose clock-out never arrived once the
// clock-out window after the scheduled end has passed. The close goes through
// the correction path so the closed record is finalized like any other.
func (j *AttendanceJobs) AutoCloseOpenRecords(ctx context.Context) error {
	c, err := j.companyRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load company settings: %w", err)
	}
	settings := c.Settings

	now := time.Now().UTC()
	open, err := j.attendanceRepo.ListOpenBefore(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list open records: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	closedCount := 0
	for _, rec := range open {
		scheduledEnd := clockOn(rec.WorkDate, settings.StandardEndTime)
		if !scheduledEnd.After(clockOn(rec.WorkDate, settings.StandardStartTime)) {
			// Overnight schedule, the shift ends on the next calendar day.
			scheduledEnd = scheduledEnd.Add(24 * time.Hour)
		}

		deadline := scheduledEnd.Add(time.Duration(settings.ClockOutWindowMinutes) * time.Minute)
		if now.Before(deadline) {
			continue
		}

		clockOut := scheduledEnd.Format(time.RFC3339)
		note := fmt.Sprintf("Auto-closed: no clock-out recorded by %s", deadline.Format("2006-01-02 15:04"))
		_, err := j.attendanceService.Correct(ctx, attendance.CorrectionRequest{
			ID:       rec.ID,
			ClockOut: &clockOut,
			Note:     &note,
		})
		if err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err)
			continue
		}
		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-closed open attendance records", "count", closedCount)
	}
	return nil
}

// MarkAbsentEmployees inserts absent records for active employees with no
// attendance on the previous day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	yesterday := dateOf(time.Now().UTC().AddDate(0, 0, -1))
	yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	markedCount := 0
	for _, emp := range employees {
		_, err := j.attendanceRepo.GetByEmployeeDate(ctx, emp.ID, yesterday)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Error("Cron: Failed to check attendance", "employee_id", emp.ID, "error", err)
			continue
		}

		rec := attendance.Record{
			EmployeeID: emp.ID,
			SiteID:     emp.SiteID,
			WorkDate:   yesterday,
			Status:     attendance.StatusAbsent,
		}
		if err := j.attendanceRepo.Create(ctx, &rec); err != nil {
			slog.Error("Cron: Failed to create absence record", "employee_id", emp.ID, "error", err)
			continue
		}
		markedCount++
	}

	slog.Info("Cron: Marked absent employees", "count", markedCount)
	return nil
}

// EvaluateAlerts runs the attendance alert checks for the previous day.
func (j *AttendanceJobs) EvaluateAlerts(ctx context.Context) error {
	// Only run in the early morning (01:00-01:59 UTC)
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	yesterday := dateOf(time.Now().UTC().AddDate(0, 0, -1))
	created, err := j.alertService.Evaluate(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to evaluate alerts: %w", err)
	}

	slog.Info("Cron: Evaluated attendance alerts", "created", created)
	return nil
}

// clockOn anchors an "HH:MM" clock string on a date, in UTC.
func clockOn(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return date
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// dateOf truncates a timestamp to its work date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
