package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/genbaworks/kintai-backend-go/internal/domain/alert"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/jwt"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/sse"
	"github.com/go-chi/chi/v5"
)

type AlertHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type alertHandlerImpl struct {
	alertService alert.Service
	jwtService   jwt.Service
	hub          *sse.Hub
}

func NewAlertHandler(alertService alert.Service, jwtService jwt.Service, hub *sse.Hub) AlertHandler {
	return &alertHandlerImpl{
		alertService: alertService,
		jwtService:   jwtService,
		hub:          hub,
	}
}

// List implements AlertHandler.
func (h *alertHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := alert.Filter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if siteID := r.URL.Query().Get("site_id"); siteID != "" {
		filter.SiteID = &siteID
	}
	if t := r.URL.Query().Get("type"); t != "" {
		alertType := alert.Type(t)
		filter.Type = &alertType
	}
	if s := r.URL.Query().Get("severity"); s != "" {
		severity := alert.Severity(s)
		filter.Severity = &severity
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := alert.Status(s)
		filter.Status = &status
	}

	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	results, err := h.alertService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements AlertHandler.
func (h *alertHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Alert ID is required", nil)
		return
	}

	result, err := h.alertService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkRead implements AlertHandler.
func (h *alertHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Alert ID is required", nil)
		return
	}

	result, err := h.alertService.MarkRead(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Resolve implements AlertHandler.
func (h *alertHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Alert ID is required", nil)
		return
	}

	var req alert.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode resolve request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.alertService.Resolve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stream handles the SSE connection for real-time alert delivery
func (h *alertHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	events, cleanup := h.hub.Subscribe(userID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":\"%s\"}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			// Send keepalive ping
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
