package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/internal/hrms/service"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/httputil"
	"github.com/peopledesk/hrms-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	service *service.EmployeeService
	logger  *logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(svc *service.EmployeeService, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: svc,
		logger:  log,
	}
}

// CreateEmployeeRequest is the POST /api/employees body
type CreateEmployeeRequest struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Email      string  `json:"email" validate:"required,email"`
	Department string  `json:"department" validate:"required"`
	Position   string  `json:"position" validate:"required"`
	BaseSalary float64 `json:"base_salary" validate:"gte=0"`
	Allowances float64 `json:"allowances" validate:"gte=0"`
	Deductions float64 `json:"deductions" validate:"gte=0"`
	Status     string  `json:"status" validate:"omitempty,oneof='Active' 'On Leave' 'Inactive'"`
	HireDate   string  `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateEmployeeRequest is the PUT /api/employees/{id} body
type UpdateEmployeeRequest struct {
	Name       string  `json:"name" validate:"required,min=2"`
	Email      string  `json:"email" validate:"required,email"`
	Department string  `json:"department" validate:"required"`
	Position   string  `json:"position" validate:"required"`
	BaseSalary float64 `json:"base_salary" validate:"gte=0"`
	Allowances float64 `json:"allowances" validate:"gte=0"`
	Deductions float64 `json:"deductions" validate:"gte=0"`
	Status     string  `json:"status" validate:"required,oneof='Active' 'On Leave' 'Inactive'"`
}

// List lists all employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithCount(w, http.StatusOK, employees, len(employees))
}

// Get gets an employee by business id
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSON(w, http.StatusOK, emp)
}

// Create creates a new employee
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	emp := &repository.Employee{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		BaseSalary: decimal.NewFromFloat(req.BaseSalary),
		Allowances: decimal.NewFromFloat(req.Allowances),
		Deductions: decimal.NewFromFloat(req.Deductions),
		Status:     req.Status,
	}

	if req.HireDate != "" {
		hireDate, err := time.Parse(dateLayout, req.HireDate)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid hire_date format, expected YYYY-MM-DD"))
			return
		}
		emp.HireDate = hireDate
	}

	if err := h.service.Create(r.Context(), emp); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.Created(w, emp, "Employee created successfully")
}

// Update updates an employee's profile fields
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateEmployeeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	emp := &repository.Employee{
		EmployeeID: id,
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		BaseSalary: decimal.NewFromFloat(req.BaseSalary),
		Allowances: decimal.NewFromFloat(req.Allowances),
		Deductions: decimal.NewFromFloat(req.Deductions),
		Status:     req.Status,
	}

	if err := h.service.Update(r.Context(), emp); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithMessage(w, http.StatusOK, emp, "Employee updated successfully")
}

// Delete removes an employee
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.ErrorLogged(w, r, h.logger, err)
		return
	}

	httputil.JSONWithMessage(w, http.StatusOK, nil, "Employee deleted successfully")
}
