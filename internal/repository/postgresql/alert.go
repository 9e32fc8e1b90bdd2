package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/alert"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type alertRepositoryImpl struct {
	db *database.DB
}

func NewAlertRepository(db *database.DB) alert.Repository {
	return &alertRepositoryImpl{db: db}
}

const alertColumns = `
	a.id, a.employee_id, a.site_id, a.date, a.type, a.severity, a.title, a.message,
	a.status, a.read_at, a.resolved_at, a.resolved_by, a.resolution,
	a.created_at, a.updated_at, e.full_name AS employee_name, s.name AS site_name`

const alertFrom = `
	FROM alerts a
	JOIN employees e ON e.id = a.employee_id
	LEFT JOIN sites s ON s.id = a.site_id`

func scanAlert(row interface{ Scan(dest ...any) error }) (alert.Alert, error) {
	var a alert.Alert
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.SiteID,
		&a.Date,
		&a.Type,
		&a.Severity,
		&a.Title,
		&a.Message,
		&a.Status,
		&a.ReadAt,
		&a.ResolvedAt,
		&a.ResolvedBy,
		&a.Resolution,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeName,
		&a.SiteName,
	)
	return a, err
}

const insertAlertQuery = `
	INSERT INTO alerts (id, employee_id, site_id, date, type, severity, title, message, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING created_at, updated_at
`

// Create implements alert.Repository.
func (r *alertRepositoryImpl) Create(ctx context.Context, a alert.Alert) (alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	err := q.QueryRow(ctx, insertAlertQuery,
		a.ID, a.EmployeeID, a.SiteID, a.Date, a.Type, a.Severity, a.Title, a.Message, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// CreateBatch implements alert.Repository.
func (r *alertRepositoryImpl) CreateBatch(ctx context.Context, alerts []alert.Alert) error {
	q := GetQuerier(ctx, r.db)

	for i := range alerts {
		a := &alerts[i]
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		if err := q.QueryRow(ctx, insertAlertQuery,
			a.ID, a.EmployeeID, a.SiteID, a.Date, a.Type, a.Severity, a.Title, a.Message, a.Status,
		).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

// GetByID implements alert.Repository.
func (r *alertRepositoryImpl) GetByID(ctx context.Context, id string) (alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + alertColumns + alertFrom + ` WHERE a.id = $1`
	return scanAlert(q.QueryRow(ctx, query, id))
}

// List implements alert.Repository.
func (r *alertRepositoryImpl) List(ctx context.Context, filter alert.Filter) ([]alert.Alert, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where []string
	var args []interface{}
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}

	if filter.EmployeeID != nil {
		add("a.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.SiteID != nil {
		add("a.site_id = $%d", *filter.SiteID)
	}
	if filter.Type != nil {
		add("a.type = $%d", *filter.Type)
	}
	if filter.Severity != nil {
		add("a.severity = $%d", *filter.Severity)
	}
	if filter.Status != nil {
		add("a.status = $%d", *filter.Status)
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = ` WHERE ` + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + alertFrom + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT` + alertColumns + alertFrom + whereClause + ` ORDER BY a.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		if filter.Page > 1 {
			args = append(args, (filter.Page-1)*filter.Limit)
			query += fmt.Sprintf(" OFFSET $%d", len(args))
		}
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var alerts []alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		alerts = append(alerts, a)
	}
	return alerts, total, rows.Err()
}

// GetOpenByEmployeeDate implements alert.Repository.
func (r *alertRepositoryImpl) GetOpenByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]alert.Alert, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + alertColumns + alertFrom + `
		WHERE a.employee_id = $1 AND a.date = $2 AND a.status != 'resolved'`
	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []alert.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// MarkRead implements alert.Repository.
func (r *alertRepositoryImpl) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE alerts SET status = 'read', read_at = $2, updated_at = NOW()
		WHERE id = $1 AND status != 'resolved'
		RETURNING id
	`
	var updated string
	return q.QueryRow(ctx, query, id, readAt).Scan(&updated)
}

// Resolve implements alert.Repository.
func (r *alertRepositoryImpl) Resolve(ctx context.Context, id string, resolvedBy string, resolution string, resolvedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE alerts
		SET status = 'resolved', resolved_by = $2, resolution = $3, resolved_at = $4, updated_at = NOW()
		WHERE id = $1 AND status != 'resolved'
		RETURNING id
	`
	var updated string
	return q.QueryRow(ctx, query, id, resolvedBy, resolution, resolvedAt).Scan(&updated)
}
