package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/auth"
	"github.com/genbaworks/kintai-backend-go/internal/domain/user"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/database"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/jwt"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db         *database.DB
	userRepo   user.Repository
	jwtService jwt.Service
}

func NewAuthService(db *database.DB, userRepo user.Repository, jwtService jwt.Service) auth.Service {
	return &AuthServiceImpl{
		db:         db,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !u.Active {
		return auth.LoginResponse{}, auth.ErrAccountDisabled
	}
	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(u)
}

// Refresh implements auth.Service. A valid refresh token yields a fresh
// access/refresh pair; the old refresh token is revoked.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	userID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrTokenInvalid
	}

	u, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrTokenInvalid
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !u.Active {
		return auth.LoginResponse{}, auth.ErrAccountDisabled
	}

	a.jwtService.RevokeToken(refreshToken)
	return a.issueTokens(u)
}

func (a *AuthServiceImpl) issueTokens(u *user.User) (auth.LoginResponse, error) {
	token, expiresAt, err := a.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken:      token,
		TokenType:        "Bearer",
		ExpiresIn:        int(expiresAt - time.Now().Unix()),
		User:             mapUserToResponse(u),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

// Register implements auth.Service. Only admins reach this; the handler
// enforces the role.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	existing, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return auth.UserResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return auth.UserResponse{}, user.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	u := &user.User{
		Email:        req.Email,
		PasswordHash: &hashStr,
		Name:         req.Name,
		Role:         user.Role(req.Role),
		Active:       true,
		EmployeeID:   req.EmployeeID,
	}
	if err := a.userRepo.Create(ctx, u); err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return mapUserToResponse(u), nil
}

// ChangePassword implements auth.Service.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if u.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.OldPassword)); err != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)
	u.PasswordHash = &hashStr

	if err := a.userRepo.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Me implements auth.Service.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (auth.UserResponse, error) {
	u, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.UserResponse{}, user.ErrUserNotFound
		}
		return auth.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return mapUserToResponse(u), nil
}

func mapUserToResponse(u *user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
	}
}
