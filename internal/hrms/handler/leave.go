package handler

import (
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

// LeaveHandler handles leave request endpoints
type LeaveHandler struct {
	service *service.LeaveService
	logger  *logger.Logger
}

// NewLeaveHandler creates a new leave handler
func NewLeaveHandler(svc *service.LeaveService, log *logger.Logger) *LeaveHandler {
	return &LeaveHandler{
		service: svc,
		logger:  log,
	}
}

// SubmitLeaveRequest is the POST /api/leave-requests body
type SubmitLeaveRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	LeaveType  string `json:"leave_type" validate:"required,oneof='Annual Leave' 'Sick Leave' 'Personal Leave' 'Emergency Leave'"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"required,min=5"`
}

// DecideLeaveRequest is the approve/reject body
type DecideLeaveRequest struct {
	ApprovedBy string `json:"approved_by" validate:"required"`
}

// Submit creates a new leave request
func (h *LeaveHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitLeaveRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid start_date format, expected YYYY-MM-DD"))
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid end_date format, expected YYYY-MM-DD"))
		return
	}

	leave, err := h.service.Submit(r.Context(), service.SubmitLeaveInput{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
	})
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.Created(w, leave, "Leave request submitted successfully")
}

// List lists leave requests, filtered by status and employee
func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	params := repository.LeaveListParams{}

	if status := r.URL.Query().Get("status"); status != "" {
		params.Status = &status
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		params.EmployeeID = &employeeID
	}

	requests, err := h.service.List(r.Context(), params)
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithCount(w, http.StatusOK, requests, len(requests))
}

// Approve approves a pending leave request
func (h *LeaveHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

// Reject rejects a pending leave request
func (h *LeaveHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *LeaveHandler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid leave request id"))
		return
	}

	var req DecideLeaveRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	var leave *repository.LeaveRequest
	var message string
	if approve {
		leave, err = h.service.Approve(r.Context(), id, req.ApprovedBy)
		message = "Leave request approved"
	} else {
		leave, err = h.service.Reject(r.Context(), id, req.ApprovedBy)
		message = "Leave request rejected"
	}
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithMessage(w, http.StatusOK, leave, message)
}

// Stats returns the current month's status breakdown
func (h *LeaveHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, stats)
}
