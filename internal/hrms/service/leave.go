package service

import (
	"context"
	"time"

	"github.com/peopledesk/hrms-backend/internal/hrms/accounting"
	"github.com/peopledesk/hrms-backend/internal/hrms/events"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// SubmitLeaveInput carries one leave request submission
type SubmitLeaveInput struct {
	EmployeeID string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// LeaveService handles leave request business logic
type LeaveService struct {
	leaveRepo *repository.LeaveRepository
	publisher *events.HRMSEventPublisher
	logger    *logger.Logger
}

// NewLeaveService creates a new leave service
func NewLeaveService(
	leaveRepo *repository.LeaveRepository,
	publisher *events.HRMSEventPublisher,
	log *logger.Logger,
) *LeaveService {
	return &LeaveService{
		leaveRepo: leaveRepo,
		publisher: publisher,
		logger:    log,
	}
}

// Submit creates a new Pending leave request. The day count is the inclusive
// span of the requested dates; an end before the start is rejected here.
func (s *LeaveService) Submit(ctx context.Context, input SubmitLeaveInput) (*repository.LeaveRequest, error) {
	days, err := accounting.LeaveDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	req := &repository.LeaveRequest{
		EmployeeID:    input.EmployeeID,
		LeaveType:     input.LeaveType,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		DaysRequested: days,
		Reason:        input.Reason,
		AppliedDate:   time.Now().UTC().Truncate(24 * time.Hour),
	}

	if err := s.leaveRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.publisher.PublishLeaveSubmitted(ctx, req)

	s.logger.Info().
		Int64("request_id", req.ID).
		Str("employee_id", req.EmployeeID).
		Str("leave_type", req.LeaveType).
		Int("days_requested", req.DaysRequested).
		Msg("leave request submitted")

	return req, nil
}

// List lists leave requests with optional filters
func (s *LeaveService) List(ctx context.Context, params repository.LeaveListParams) ([]*repository.LeaveRequest, error) {
	return s.leaveRepo.List(ctx, params)
}

// Approve moves a Pending request to Approved
func (s *LeaveService) Approve(ctx context.Context, id int64, approver string) (*repository.LeaveRequest, error) {
	return s.decide(ctx, id, "Approved", approver)
}

// Reject moves a Pending request to Rejected
func (s *LeaveService) Reject(ctx context.Context, id int64, approver string) (*repository.LeaveRequest, error) {
	return s.decide(ctx, id, "Rejected", approver)
}

func (s *LeaveService) decide(ctx context.Context, id int64, status, approver string) (*repository.LeaveRequest, error) {
	decidedAt := time.Now().UTC().Truncate(24 * time.Hour)

	if err := s.leaveRepo.Decide(ctx, id, status, approver, decidedAt); err != nil {
		return nil, err
	}

	s.publisher.PublishLeaveDecided(ctx, id, status == "Approved", approver)

	s.logger.Info().
		Int64("request_id", id).
		Str("status", status).
		Str("approved_by", approver).
		Msg("leave request decided")

	return s.leaveRepo.GetByID(ctx, id)
}

// Stats returns the current month's status breakdown
func (s *LeaveService) Stats(ctx context.Context) (*repository.LeaveStats, error) {
	return s.leaveRepo.Stats(ctx)
}
