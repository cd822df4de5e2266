package events

import (
	"context"

	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/logger"
	"github.com/peopledesk/hrms-backend/pkg/messaging"
)

const dateLayout = "2006-01-02"

// Sink is where events go. Satisfied by messaging.Publisher in production
// and by the test mock.
type Sink interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// HRMSEventPublisher publishes domain events for employee, attendance,
// leave and payroll changes. Publishing is best-effort: failures are logged
// and never surfaced to the caller.
type HRMSEventPublisher struct {
	sink   Sink
	logger *logger.Logger
}

// NewHRMSEventPublisher creates a publisher over the hrms.events exchange
func NewHRMSEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*HRMSEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeHRMSEvents, "hrms-server", log)
	if err != nil {
		return nil, err
	}

	return &HRMSEventPublisher{
		sink:   publisher,
		logger: log,
	}, nil
}

// NewHRMSEventPublisherWithSink wires an alternative sink. Used by tests.
func NewHRMSEventPublisherWithSink(sink Sink, log *logger.Logger) *HRMSEventPublisher {
	return &HRMSEventPublisher{
		sink:   sink,
		logger: log,
	}
}

// PublishEmployeeCreated publishes an employee created event
func (p *HRMSEventPublisher) PublishEmployeeCreated(ctx context.Context, emp *repository.Employee) {
	data := messaging.EmployeeCreatedEvent{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Department: emp.Department,
	}

	if err := p.sink.Publish(ctx, messaging.EventEmployeeCreated, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", emp.EmployeeID).Msg("failed to publish employee created event")
	}
}

// PublishEmployeeUpdated publishes an employee updated event
func (p *HRMSEventPublisher) PublishEmployeeUpdated(ctx context.Context, emp *repository.Employee) {
	data := messaging.EmployeeUpdatedEvent{
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Status:     emp.Status,
	}

	if err := p.sink.Publish(ctx, messaging.EventEmployeeUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", emp.EmployeeID).Msg("failed to publish employee updated event")
	}
}

// PublishEmployeeDeleted publishes an employee deleted event
func (p *HRMSEventPublisher) PublishEmployeeDeleted(ctx context.Context, employeeID string) {
	data := messaging.EmployeeDeletedEvent{
		EmployeeID: employeeID,
	}

	if err := p.sink.Publish(ctx, messaging.EventEmployeeDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to publish employee deleted event")
	}
}

// PublishAttendanceMarked publishes an attendance marked event
func (p *HRMSEventPublisher) PublishAttendanceMarked(ctx context.Context, att *repository.Attendance) {
	data := messaging.AttendanceMarkedEvent{
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format(dateLayout),
		Status:     att.Status,
		TotalHours: att.TotalHours.String(),
	}

	if err := p.sink.Publish(ctx, messaging.EventAttendanceMarked, data); err != nil {
		p.logger.Error().Err(err).Str("employee_id", att.EmployeeID).Msg("failed to publish attendance marked event")
	}
}

// PublishLeaveSubmitted publishes a leave submitted event
func (p *HRMSEventPublisher) PublishLeaveSubmitted(ctx context.Context, req *repository.LeaveRequest) {
	data := messaging.LeaveSubmittedEvent{
		RequestID:  req.ID,
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  req.StartDate.Format(dateLayout),
		EndDate:    req.EndDate.Format(dateLayout),
		Days:       req.DaysRequested,
	}

	if err := p.sink.Publish(ctx, messaging.EventLeaveSubmitted, data); err != nil {
		p.logger.Error().Err(err).Int64("request_id", req.ID).Msg("failed to publish leave submitted event")
	}
}

// PublishLeaveDecided publishes a leave approved or rejected event
func (p *HRMSEventPublisher) PublishLeaveDecided(ctx context.Context, requestID int64, approved bool, approver string) {
	eventType := messaging.EventLeaveApproved
	if !approved {
		eventType = messaging.EventLeaveRejected
	}

	data := messaging.LeaveDecidedEvent{
		RequestID:  requestID,
		ApprovedBy: approver,
	}

	if err := p.sink.Publish(ctx, eventType, data); err != nil {
		p.logger.Error().Err(err).Int64("request_id", requestID).Msg("failed to publish leave decided event")
	}
}

// PublishPayrollProcessed publishes a payroll processed event
func (p *HRMSEventPublisher) PublishPayrollProcessed(ctx context.Context, periodStart, periodEnd string, employees int) {
	data := messaging.PayrollProcessedEvent{
		PayPeriodStart:     periodStart,
		PayPeriodEnd:       periodEnd,
		EmployeesProcessed: employees,
	}

	if err := p.sink.Publish(ctx, messaging.EventPayrollProcessed, data); err != nil {
		p.logger.Error().Err(err).Str("period_start", periodStart).Msg("failed to publish payroll processed event")
	}
}
