package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/genbaworks/kintai-backend-go/internal/domain/auth"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.Service, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

// getUserIDFromContext extracts user_id from JWT context
func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// getEmployeeIDFromContext extracts employee_id from JWT context
func getEmployeeIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employeeID, ok := claims["employee_id"].(string); ok {
		return employeeID
	}
	return ""
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode login request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.Success(w, result)
}

// Refresh implements AuthHandler. The refresh token comes from the
// HttpOnly cookie set at login.
func (h *authHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		response.Unauthorized(w, "Missing refresh token")
		return
	}

	result, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshExpiresAt))
	response.Success(w, result)
}

// Logout implements AuthHandler.
func (h *authHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil && cookie.Value != "" {
		h.jwtService.RevokeToken(cookie.Value)
	}

	// Expire the cookie
	http.SetCookie(w, h.jwtService.RefreshTokenCookie("", 0))
	response.SuccessWithMessage(w, "Logged out", nil)
}

// Register implements AuthHandler.
func (h *authHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode register request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Account created", result)
}

// Me implements AuthHandler.
func (h *authHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ChangePassword implements AuthHandler.
func (h *authHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req auth.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode change password request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = userID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.authService.ChangePassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password changed", nil)
}

// GetSSEToken implements AuthHandler.
func (h *authHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := getUserIDFromContext(r)
	if userID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}
