package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/genbaworks/kintai-backend-go/internal/domain/company"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.Service
}

func NewCompanyHandler(companyService company.Service) CompanyHandler {
	return &companyHandlerImpl{
		companyService: companyService,
	}
}

// Get implements CompanyHandler.
func (h *companyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateProfile implements CompanyHandler.
func (h *companyHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update profile request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.companyService.UpdateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSettings implements CompanyHandler.
func (h *companyHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSettings implements CompanyHandler.
func (h *companyHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update settings request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.companyService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
