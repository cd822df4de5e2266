package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventEmployeeCreated = "hrms.employee.created"
	EventEmployeeUpdated = "hrms.employee.updated"
	EventEmployeeDeleted = "hrms.employee.deleted"

	EventAttendanceMarked = "hrms.attendance.marked"

	EventLeaveSubmitted = "hrms.leave.submitted"
	EventLeaveApproved  = "hrms.leave.approved"
	EventLeaveRejected  = "hrms.leave.rejected"

	EventPayrollProcessed = "hrms.payroll.processed"
)

// ExchangeHRMSEvents is the topic exchange all HRMS events are published to
const ExchangeHRMSEvents = "hrms.events"

// Event is the base event structure
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      dataBytes,
	}, nil
}

// EmployeeCreatedEvent is published when an employee is created
type EmployeeCreatedEvent struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// EmployeeUpdatedEvent is published when an employee is updated
type EmployeeUpdatedEvent struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
}

// EmployeeDeletedEvent is published when an employee is deleted
type EmployeeDeletedEvent struct {
	EmployeeID string `json:"employee_id"`
}

// AttendanceMarkedEvent is published when attendance is marked or corrected
type AttendanceMarkedEvent struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	TotalHours string `json:"total_hours"`
}

// LeaveSubmittedEvent is published when a leave request is submitted
type LeaveSubmittedEvent struct {
	RequestID  int64  `json:"request_id"`
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Days       int    `json:"days"`
}

// LeaveDecidedEvent is published when a leave request is approved or rejected
type LeaveDecidedEvent struct {
	RequestID  int64  `json:"request_id"`
	ApprovedBy string `json:"approved_by"`
}

// PayrollProcessedEvent is published when a payroll run completes
type PayrollProcessedEvent struct {
	PayPeriodStart     string `json:"pay_period_start"`
	PayPeriodEnd       string `json:"pay_period_end"`
	EmployeesProcessed int    `json:"employees_processed"`
}
