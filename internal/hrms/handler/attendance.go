package handler

import (
	"net/http"
	"time"

	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/internal/hrms/service"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/httputil"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	service *service.AttendanceService
	logger  *logger.Logger
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(svc *service.AttendanceService, log *logger.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: svc,
		logger:  log,
	}
}

// MarkAttendanceRequest is the POST /api/attendance body
type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	CheckIn    *string `json:"check_in" validate:"omitempty,datetime=15:04"`
	CheckOut   *string `json:"check_out" validate:"omitempty,datetime=15:04"`
	Status     string  `json:"status" validate:"omitempty,oneof='Present' 'Absent' 'Late' 'Half Day'"`
}

// Mark records or corrects attendance for one employee-day
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req MarkAttendanceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid date format, expected YYYY-MM-DD"))
		return
	}

	att, err := h.service.Mark(r.Context(), service.MarkAttendanceInput{
		EmployeeID: req.EmployeeID,
		Date:       date,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Status:     req.Status,
	})
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.Created(w, att, "Attendance marked successfully")
}

// List lists attendance records, filtered by date and employee
func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	params := repository.AttendanceListParams{}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid date format, expected YYYY-MM-DD"))
			return
		}
		params.Date = &date
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		params.EmployeeID = &employeeID
	}

	records, err := h.service.List(r.Context(), params)
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithCount(w, http.StatusOK, records, len(records))
}

// Stats returns the status breakdown for one date, defaulting to today
func (h *AttendanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC().Truncate(24 * time.Hour)

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid date format, expected YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	stats, err := h.service.Stats(r.Context(), date)
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, stats)
}
