package postgresql

import (
	"context"

	"github.com/genbaworks/kintai-backend-go/internal/domain/user"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, password_hash, name, role, active, employee_id, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Role,
		&u.Active,
		&u.EmployeeID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	q := GetQuerier(ctx, r.db)

	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, email, password_hash, name, role, active, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	return q.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Active, u.EmployeeID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.Repository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(q.QueryRow(ctx, query, email))
}

// List implements user.Repository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Update implements user.Repository.
func (r *userRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, role = $5, active = $6,
		    employee_id = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return q.QueryRow(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Active, u.EmployeeID,
	).Scan(&u.UpdatedAt)
}

// SetActive implements user.Repository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET active = $2, updated_at = NOW() WHERE id = $1 RETURNING id`
	var updated string
	return q.QueryRow(ctx, query, id, active).Scan(&updated)
}
