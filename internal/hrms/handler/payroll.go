package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/internal/hrms/service"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/httputil"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// PayrollHandler handles payroll endpoints
type PayrollHandler struct {
	service *service.PayrollService
	logger  *logger.Logger
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(svc *service.PayrollService, log *logger.Logger) *PayrollHandler {
	return &PayrollHandler{
		service: svc,
		logger:  log,
	}
}

// ProcessPayrollRequest is the POST /api/payroll/process body
type ProcessPayrollRequest struct {
	PayPeriodStart string `json:"pay_period_start" validate:"required,datetime=2006-01-02"`
	PayPeriodEnd   string `json:"pay_period_end" validate:"required,datetime=2006-01-02"`
}

// List lists payroll records with optional filters
func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	params := repository.PayrollListParams{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		params.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		params.Status = &status
	}
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			httputil.Error(w, errors.BadRequest("invalid month, expected 1-12"))
			return
		}
		params.Month = &month
	}
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid year"))
			return
		}
		params.Year = &year
	}

	records, err := h.service.List(r.Context(), params)
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithCount(w, http.StatusOK, records, len(records))
}

// Process runs payroll for every active employee over a period
func (h *PayrollHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessPayrollRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	periodStart, err := time.Parse(dateLayout, req.PayPeriodStart)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid pay_period_start format, expected YYYY-MM-DD"))
		return
	}
	periodEnd, err := time.Parse(dateLayout, req.PayPeriodEnd)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid pay_period_end format, expected YYYY-MM-DD"))
		return
	}

	records, err := h.service.Process(r.Context(), periodStart, periodEnd)
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithMessage(w, http.StatusCreated, records,
		fmt.Sprintf("Payroll processed for %d employees", len(records)))
}

// Payslip streams a payroll record as a PDF
func (h *PayrollHandler) Payslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid payroll record id"))
		return
	}

	pdf, err := h.service.Payslip(r.Context(), id)
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%d.pdf", id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// Stats summarizes the current month's payroll
func (h *PayrollHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, stats)
}
