package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/genbaworks/kintai-backend-go/internal/domain/user"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type UserServiceImpl struct {
	db   *database.DB
	repo user.Repository
}

func NewUserService(db *database.DB, repo user.Repository) user.Service {
	return &UserServiceImpl{db: db, repo: repo}
}

// List implements user.Service.
func (u *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, mapUserToResponse(&users[i]))
	}
	return responses, nil
}

// SetActive implements user.Service.
func (u *UserServiceImpl) SetActive(ctx context.Context, id string, active bool) (user.UserResponse, error) {
	usr, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := u.repo.SetActive(ctx, id, active); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}
	usr.Active = active
	return mapUserToResponse(usr), nil
}

func mapUserToResponse(usr *user.User) user.UserResponse {
	return user.UserResponse{
		ID:         usr.ID,
		Email:      usr.Email,
		Name:       usr.Name,
		Role:       string(usr.Role),
		Active:     usr.Active,
		EmployeeID: usr.EmployeeID,
	}
}
