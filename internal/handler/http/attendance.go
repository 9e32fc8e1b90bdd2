package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/genbaworks/kintai-backend-go/internal/domain/attendance"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
	"github.com/genbaworks/kintai-backend-go/internal/pkg/validator"
	"github.com/genbaworks/kintai-backend-go/internal/service/export"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
	ExportCSV(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	exportService     export.Service
}

func NewAttendanceHandler(attendanceService attendance.Service, exportService export.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		exportService:     exportService,
	}
}

// decodePunch reads an optional JSON body into a punch request. Punches
// without a body use the server clock and carry no location.
func decodePunch(r *http.Request) (attendance.PunchRequest, error) {
	var req attendance.PunchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (h *attendanceHandlerImpl) punch(w http.ResponseWriter, r *http.Request,
	fn func(req attendance.PunchRequest) (attendance.RecordResponse, error)) {

	req, err := decodePunch(r)
	if err != nil {
		slog.Error("Failed to decode punch request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := fn(req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, func(req attendance.PunchRequest) (attendance.RecordResponse, error) {
		return h.attendanceService.ClockIn(r.Context(), req)
	})
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, func(req attendance.PunchRequest) (attendance.RecordResponse, error) {
		return h.attendanceService.ClockOut(r.Context(), req)
	})
}

// StartBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, func(req attendance.PunchRequest) (attendance.RecordResponse, error) {
		return h.attendanceService.StartBreak(r.Context(), req)
	})
}

// EndBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.punch(w, r, func(req attendance.PunchRequest) (attendance.RecordResponse, error) {
		return h.attendanceService.EndBreak(r.Context(), req)
	})
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Forbidden(w, "No employee profile linked to this account")
		return
	}

	result, err := h.attendanceService.Today(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	result, err := h.attendanceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseAttendanceFilter builds a record filter from query parameters.
func parseAttendanceFilter(r *http.Request) (attendance.Filter, error) {
	filter := attendance.Filter{}

	filter.EmployeeID = r.URL.Query().Get("employee_id")
	filter.SiteID = r.URL.Query().Get("site_id")

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = attendance.Status(status)
	}

	if from := r.URL.Query().Get("date_from"); from != "" {
		t, ok := validator.IsValidDate(from)
		if !ok {
			return filter, validator.ValidationErrors{{Field: "date_from", Message: "must be a date in YYYY-MM-DD format"}}
		}
		filter.DateFrom = t
	}

	if to := r.URL.Query().Get("date_to"); to != "" {
		t, ok := validator.IsValidDate(to)
		if !ok {
			return filter, validator.ValidationErrors{{Field: "date_to", Message: "must be a date in YYYY-MM-DD format"}}
		}
		filter.DateTo = t
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	return filter, nil
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Correct implements AttendanceHandler.
func (h *attendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode correction request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Correct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportCSV implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Exports are unpaged.
	filter.Limit = 0
	filter.Offset = 0

	data, err := h.exportService.AttendanceCSV(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance.csv"`)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
