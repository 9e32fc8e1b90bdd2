package postgresql

import (
	"context"
	"errors"

	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.Repository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `
	id, name, address, phone_number,
	settings_version,
	standard_work_hours, standard_work_minutes, lunch_break_minutes,
	standard_start_time, standard_end_time,
	overtime_threshold_hours, overtime_rate,
	night_work_start_time, night_work_end_time, night_work_rate,
	holiday_work_rate,
	late_arrival_grace_minutes, early_leave_grace_minutes,
	clock_in_window_minutes, clock_out_window_minutes,
	weekly_work_hours, monthly_overtime_limit,
	auto_break_enabled, auto_break_threshold_hours, auto_break_minutes,
	rounding_unit, rounding_method,
	created_at, updated_at`

func scanCompany(row interface{ Scan(dest ...any) error }) (*company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.PhoneNumber,
		&c.Settings.Version,
		&c.Settings.StandardWorkHours,
		&c.Settings.StandardWorkMinutes,
		&c.Settings.LunchBreakMinutes,
		&c.Settings.StandardStartTime,
		&c.Settings.StandardEndTime,
		&c.Settings.OvertimeThresholdHours,
		&c.Settings.OvertimeRate,
		&c.Settings.NightWorkStartTime,
		&c.Settings.NightWorkEndTime,
		&c.Settings.NightWorkRate,
		&c.Settings.HolidayWorkRate,
		&c.Settings.LateArrivalGraceMinutes,
		&c.Settings.EarlyLeaveGraceMinutes,
		&c.Settings.ClockInWindowMinutes,
		&c.Settings.ClockOutWindowMinutes,
		&c.Settings.WeeklyWorkHours,
		&c.Settings.MonthlyOvertimeLimit,
		&c.Settings.AutoBreakEnabled,
		&c.Settings.AutoBreakThresholdHours,
		&c.Settings.AutoBreakMinutes,
		&c.Settings.RoundingUnit,
		&c.Settings.RoundingMethod,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Get implements company.Repository. The companies table holds exactly one
// row.
func (r *companyRepositoryImpl) Get(ctx context.Context) (*company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + companyColumns + ` FROM companies LIMIT 1`
	return scanCompany(q.QueryRow(ctx, query))
}

// UpdateProfile implements company.Repository.
func (r *companyRepositoryImpl) UpdateProfile(ctx context.Context, c *company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $2, address = $3, phone_number = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query, c.ID, c.Name, c.Address, c.PhoneNumber).Scan(&c.UpdatedAt)
}

// UpdateSettings implements company.Repository. The version predicate makes
// the write a compare-and-swap; no row updated means the caller lost the
// race.
func (r *companyRepositoryImpl) UpdateSettings(ctx context.Context, c *company.Company, expectedVersion int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET settings_version = settings_version + 1,
		    standard_work_hours = $3, standard_work_minutes = $4, lunch_break_minutes = $5,
		    standard_start_time = $6, standard_end_time = $7,
		    overtime_threshold_hours = $8, overtime_rate = $9,
		    night_work_start_time = $10, night_work_end_time = $11, night_work_rate = $12,
		    holiday_work_rate = $13,
		    late_arrival_grace_minutes = $14, early_leave_grace_minutes = $15,
		    clock_in_window_minutes = $16, clock_out_window_minutes = $17,
		    weekly_work_hours = $18, monthly_overtime_limit = $19,
		    auto_break_enabled = $20, auto_break_threshold_hours = $21, auto_break_minutes = $22,
		    rounding_unit = $23, rounding_method = $24,
		    updated_at = NOW()
		WHERE id = $1 AND settings_version = $2
		RETURNING settings_version, updated_at
	`
	s := c.Settings
	err := q.QueryRow(ctx, query,
		c.ID, expectedVersion,
		s.StandardWorkHours, s.StandardWorkMinutes, s.LunchBreakMinutes,
		s.StandardStartTime, s.StandardEndTime,
		s.OvertimeThresholdHours, s.OvertimeRate,
		s.NightWorkStartTime, s.NightWorkEndTime, s.NightWorkRate,
		s.HolidayWorkRate,
		s.LateArrivalGraceMinutes, s.EarlyLeaveGraceMinutes,
		s.ClockInWindowMinutes, s.ClockOutWindowMinutes,
		s.WeeklyWorkHours, s.MonthlyOvertimeLimit,
		s.AutoBreakEnabled, s.AutoBreakThresholdHours, s.AutoBreakMinutes,
		s.RoundingUnit, s.RoundingMethod,
	).Scan(&c.Settings.Version, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return company.ErrStaleSettings
	}
	return err
}

// GetSettingsVersion implements company.Repository. Historic versions are
// kept in an append-only audit table so locked salary records can name the
// rules they were computed under.
func (r *companyRepositoryImpl) GetSettingsVersion(ctx context.Context, version int) (*company.Company, error) {
	q := GetQuerier(ctx, r.db)

	current, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current.Settings.Version == version {
		return current, nil
	}

	query := `
		SELECT
			standard_work_hours, standard_work_minutes, lunch_break_minutes,
			standard_start_time, standard_end_time,
			overtime_threshold_hours, overtime_rate,
			night_work_start_time, night_work_end_time, night_work_rate,
			holiday_work_rate,
			late_arrival_grace_minutes, early_leave_grace_minutes,
			clock_in_window_minutes, clock_out_window_minutes,
			weekly_work_hours, monthly_overtime_limit,
			auto_break_enabled, auto_break_threshold_hours, auto_break_minutes,
			rounding_unit, rounding_method
		FROM company_settings_history
		WHERE company_id = $1 AND settings_version = $2
	`
	s := &current.Settings
	err = q.QueryRow(ctx, query, current.ID, version).Scan(
		&s.StandardWorkHours, &s.StandardWorkMinutes, &s.LunchBreakMinutes,
		&s.StandardStartTime, &s.StandardEndTime,
		&s.OvertimeThresholdHours, &s.OvertimeRate,
		&s.NightWorkStartTime, &s.NightWorkEndTime, &s.NightWorkRate,
		&s.HolidayWorkRate,
		&s.LateArrivalGraceMinutes, &s.EarlyLeaveGraceMinutes,
		&s.ClockInWindowMinutes, &s.ClockOutWindowMinutes,
		&s.WeeklyWorkHours, &s.MonthlyOvertimeLimit,
		&s.AutoBreakEnabled, &s.AutoBreakThresholdHours, &s.AutoBreakMinutes,
		&s.RoundingUnit, &s.RoundingMethod,
	)
	if err != nil {
		return nil, err
	}
	s.Version = version
	return current, nil
}
