package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/genbaworks/kintai-backend-go/internal/domain/salary"
	"github.com/genbaworks/kintai-backend-go/internal/handler/http/response"
	"github.com/genbaworks/kintai-backend-go/internal/service/export"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ChangeStatus(w http.ResponseWriter, r *http.Request)
	ExportWorkbook(w http.ResponseWriter, r *http.Request)
	ExportPayslip(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.Service
	exportService export.Service
}

func NewSalaryHandler(salaryService salary.Service, exportService export.Service) SalaryHandler {
	return &salaryHandlerImpl{
		salaryService: salaryService,
		exportService: exportService,
	}
}

// Calculate implements SalaryHandler.
func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req salary.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode calculate request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements SalaryHandler.
func (h *salaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	result, err := h.salaryService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements SalaryHandler.
func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := salary.Filter{}

	if y := r.URL.Query().Get("year"); y != "" {
		if year, err := strconv.Atoi(y); err == nil {
			filter.Year = year
		}
	}
	if m := r.URL.Query().Get("month"); m != "" {
		if month, err := strconv.Atoi(m); err == nil {
			filter.Month = month
		}
	}
	filter.EmployeeID = r.URL.Query().Get("employee_id")
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = salary.Status(status)
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	results, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ChangeStatus implements SalaryHandler.
func (h *salaryHandlerImpl) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	actorID := getUserIDFromContext(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req salary.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode status request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.ChangeStatus(r.Context(), req, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportWorkbook implements SalaryHandler.
func (h *salaryHandlerImpl) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' is required", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Query parameter 'month' must be between 1 and 12", nil)
		return
	}

	data, err := h.exportService.SalaryWorkbook(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("salary-%04d-%02d.xlsx", year, month)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ExportPayslip implements SalaryHandler.
func (h *salaryHandlerImpl) ExportPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	data, err := h.exportService.PayslipPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, id))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
