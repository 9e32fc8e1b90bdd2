package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/genbaworks/kintai-backend-go/internal/domain/site"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SiteHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type siteHandlerImpl struct {
	siteService site.Service
}

func NewSiteHandler(siteService site.Service) SiteHandler {
	return &siteHandlerImpl{
		siteService: siteService,
	}
}

// Create implements SiteHandler.
func (h *siteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req site.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create site request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.siteService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Site created", result)
}

// Get implements SiteHandler.
func (h *siteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Site ID is required", nil)
		return
	}

	result, err := h.siteService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements SiteHandler.
func (h *siteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	results, err := h.siteService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update implements SiteHandler.
func (h *siteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Site ID is required", nil)
		return
	}

	var req site.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update site request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.siteService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements SiteHandler.
func (h *siteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Site ID is required", nil)
		return
	}

	if err := h.siteService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Site deleted", nil)
}
