package service

import (
	"context"
	"time"

	"github.com/peopledesk/hrms-backend/internal/hrms/accounting"
	"github.com/peopledesk/hrms-backend/internal/hrms/events"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// MarkAttendanceInput carries one attendance marking
type MarkAttendanceInput struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *string
	CheckOut   *string
	Status     string
}

// AttendanceService handles attendance business logic
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	publisher      *events.HRMSEventPublisher
	logger         *logger.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	publisher *events.HRMSEventPublisher,
	log *logger.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		publisher:      publisher,
		logger:         log,
	}
}

// Mark records or corrects attendance for one employee-day. A second call
// for the same day replaces the first in full.
func (s *AttendanceService) Mark(ctx context.Context, input MarkAttendanceInput) (*repository.Attendance, error) {
	checkIn, checkOut := "", ""
	if input.CheckIn != nil {
		checkIn = *input.CheckIn
	}
	if input.CheckOut != nil {
		checkOut = *input.CheckOut
	}

	hours, err := accounting.AttendanceHours(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = "Present"
	}

	att := &repository.Attendance{
		EmployeeID: input.EmployeeID,
		Date:       input.Date,
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		TotalHours: hours,
		Status:     status,
	}

	if err := s.attendanceRepo.Upsert(ctx, att); err != nil {
		return nil, err
	}

	s.publisher.PublishAttendanceMarked(ctx, att)

	s.logger.Info().
		Str("employee_id", att.EmployeeID).
		Time("date", att.Date).
		Str("status", att.Status).
		Str("total_hours", att.TotalHours.String()).
		Msg("attendance marked")

	return att, nil
}

// List lists attendance records with optional filters
func (s *AttendanceService) List(ctx context.Context, params repository.AttendanceListParams) ([]*repository.Attendance, error) {
	return s.attendanceRepo.List(ctx, params)
}

// Stats returns the status breakdown for one date
func (s *AttendanceService) Stats(ctx context.Context, date time.Time) (*repository.AttendanceStats, error) {
	return s.attendanceRepo.Stats(ctx, date)
}
