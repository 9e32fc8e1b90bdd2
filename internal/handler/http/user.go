package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/genbaworks/kintai-backend-go/internal/domain/user"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	SetActive(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// List implements UserHandler.
func (h *userHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.userService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// SetActive implements UserHandler.
func (h *userHandlerImpl) SetActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "User ID is required", nil)
		return
	}

	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode set active request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Active == nil {
		response.BadRequest(w, "Field 'active' is required", nil)
		return
	}

	result, err := h.userService.SetActive(r.Context(), id, *req.Active)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
