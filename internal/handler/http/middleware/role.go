package middleware

import (
	"net/http"

	"github.com/genbaworks/kintai-backend-go/internal/domain/user"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}

		if role != string(user.RoleAdmin) {
			response.HandleError(w, user.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleManager && role != user.RoleAdmin {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
