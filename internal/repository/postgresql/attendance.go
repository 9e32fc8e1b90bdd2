package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.site_id, a.work_date, a.clock_in, a.clock_out,
	a.status, a.is_holiday, a.note,
	a.clock_in_lat, a.clock_in_lng, a.clock_out_lat, a.clock_out_lng,
	a.work_minutes, a.overtime_minutes, a.night_minutes, a.break_minutes,
	a.created_at, a.updated_at, e.full_name AS employee_name, s.name AS site_name`

const attendanceFrom = `
	FROM attendance_records a
	JOIN employees e ON e.id = a.employee_id
	LEFT JOIN sites s ON s.id = a.site_id`

func scanAttendance(row interface{ Scan(dest ...any) error }) (*attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.SiteID,
		&rec.WorkDate,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.Status,
		&rec.IsHoliday,
		&rec.Note,
		&rec.ClockInLat,
		&rec.ClockInLng,
		&rec.ClockOutLat,
		&rec.ClockOutLng,
		&rec.WorkMinutes,
		&rec.OvertimeMinutes,
		&rec.NightMinutes,
		&rec.BreakMinutes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.EmployeeName,
		&rec.SiteName,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Create implements attendance.Repository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec *attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_records (
			id, employee_id, site_id, work_date, clock_in, clock_out,
			status, is_holiday, note,
			clock_in_lat, clock_in_lng, clock_out_lat, clock_out_lng,
			work_minutes, overtime_minutes, night_minutes, break_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.SiteID, rec.WorkDate, rec.ClockIn, rec.ClockOut,
		rec.Status, rec.IsHoliday, rec.Note,
		rec.ClockInLat, rec.ClockInLng, rec.ClockOutLat, rec.ClockOutLng,
		rec.WorkMinutes, rec.OvertimeMinutes, rec.NightMinutes, rec.BreakMinutes,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
}

// GetByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceFrom + ` WHERE a.id = $1`
	rec, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadBreaks(ctx, q, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByEmployeeDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, workDate time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceFrom + ` WHERE a.employee_id = $1 AND a.work_date = $2`
	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		return nil, err
	}
	if err := r.loadBreaks(ctx, q, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List implements attendance.Repository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.EmployeeID != "" {
		add("a.employee_id = $%d", filter.EmployeeID)
	}
	if filter.SiteID != "" {
		add("a.site_id = $%d", filter.SiteID)
	}
	if filter.Status != "" {
		add("a.status = $%d", filter.Status)
	}
	if !filter.DateFrom.IsZero() {
		add("a.work_date >= $%d", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		add("a.work_date <= $%d", filter.DateTo)
	}

	query := `SELECT` + attendanceColumns + attendanceFrom
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY a.work_date DESC, e.employee_code`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.listQuery(ctx, q, query, args...)
}

// ListByEmployeeRange implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1 AND a.work_date BETWEEN $2 AND $3
		ORDER BY a.work_date`
	return r.listQuery(ctx, q, query, employeeID, from, to)
}

// ListOpenBefore implements attendance.Repository. It returns records still
// clocked in whose work date is on or before the cutoff, for the auto-close
// job.
func (r *attendanceRepositoryImpl) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceFrom + `
		WHERE a.clock_in IS NOT NULL AND a.clock_out IS NULL AND a.work_date <= $1
		ORDER BY a.work_date`
	return r.listQuery(ctx, q, query, cutoff)
}

func (r *attendanceRepositoryImpl) listQuery(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Record, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		if err := r.loadBreaks(ctx, q, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Update implements attendance.Repository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec *attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET site_id = $2, work_date = $3, clock_in = $4, clock_out = $5,
		    status = $6, is_holiday = $7, note = $8,
		    clock_in_lat = $9, clock_in_lng = $10, clock_out_lat = $11, clock_out_lng = $12,
		    work_minutes = $13, overtime_minutes = $14, night_minutes = $15, break_minutes = $16,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		rec.ID, rec.SiteID, rec.WorkDate, rec.ClockIn, rec.ClockOut,
		rec.Status, rec.IsHoliday, rec.Note,
		rec.ClockInLat, rec.ClockInLng, rec.ClockOutLat, rec.ClockOutLng,
		rec.WorkMinutes, rec.OvertimeMinutes, rec.NightMinutes, rec.BreakMinutes,
	).Scan(&rec.UpdatedAt)
}

// CreateBreak implements attendance.Repository.
func (r *attendanceRepositoryImpl) CreateBreak(ctx context.Context, b *attendance.BreakRecord) error {
	q := GetQuerier(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_breaks (id, attendance_id, start_time, end_time, auto_inserted)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var created string
	return q.QueryRow(ctx, query, b.ID, b.AttendanceID, b.StartTime, b.EndTime, b.AutoInserted).Scan(&created)
}

// UpdateBreak implements attendance.Repository.
func (r *attendanceRepositoryImpl) UpdateBreak(ctx context.Context, b *attendance.BreakRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_breaks
		SET start_time = $2, end_time = $3
		WHERE id = $1
		RETURNING id
	`
	var updated string
	return q.QueryRow(ctx, query, b.ID, b.StartTime, b.EndTime).Scan(&updated)
}

func (r *attendanceRepositoryImpl) loadBreaks(ctx context.Context, q database.Querier, rec *attendance.Record) error {
	query := `
		SELECT id, attendance_id, start_time, end_time, auto_inserted
		FROM attendance_breaks
		WHERE attendance_id = $1
		ORDER BY start_time
	`
	rows, err := q.Query(ctx, query, rec.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	rec.Breaks = rec.Breaks[:0]
	for rows.Next() {
		var b attendance.BreakRecord
		if err := rows.Scan(&b.ID, &b.AttendanceID, &b.StartTime, &b.EndTime, &b.AutoInserted); err != nil {
			return err
		}
		rec.Breaks = append(rec.Breaks, b)
	}
	return rows.Err()
}
