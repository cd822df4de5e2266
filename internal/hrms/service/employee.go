package service

import (
	"context"
	"time"

	"github.com/peopledesk/hrms-backend/internal/hrms/events"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/logger"
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	employeeRepo *repository.EmployeeRepository
	publisher    *events.HRMSEventPublisher
	logger       *logger.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo *repository.EmployeeRepository,
	publisher *events.HRMSEventPublisher,
	log *logger.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		publisher:    publisher,
		logger:       log,
	}
}

// List lists all employees, newest first
func (s *EmployeeService) List(ctx context.Context) ([]*repository.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// Get gets an employee by business id
func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*repository.Employee, error) {
	return s.employeeRepo.GetByBusinessID(ctx, employeeID)
}

// Create creates a new employee. The business id is issued from the store's
// monotonic sequence, so deleting EMP001 never makes EMP001 reappear.
func (s *EmployeeService) Create(ctx context.Context, emp *repository.Employee) error {
	businessID, err := s.employeeRepo.NextBusinessID(ctx)
	if err != nil {
		return err
	}
	emp.EmployeeID = businessID

	if emp.Status == "" {
		emp.Status = "Active"
	}
	if emp.HireDate.IsZero() {
		emp.HireDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	if err := s.employeeRepo.Create(ctx, emp); err != nil {
		return err
	}

	s.publisher.PublishEmployeeCreated(ctx, emp)

	s.logger.Info().
		Str("employee_id", emp.EmployeeID).
		Str("department", emp.Department).
		Msg("employee created")

	return nil
}

// Update updates an employee's profile fields
func (s *EmployeeService) Update(ctx context.Context, emp *repository.Employee) error {
	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return err
	}

	s.publisher.PublishEmployeeUpdated(ctx, emp)

	s.logger.Info().
		Str("employee_id", emp.EmployeeID).
		Msg("employee updated")

	return nil
}

// Delete removes an employee and cascades to dependent records
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := s.employeeRepo.Delete(ctx, employeeID); err != nil {
		return err
	}

	s.publisher.PublishEmployeeDeleted(ctx, employeeID)

	s.logger.Info().
		Str("employee_id", employeeID).
		Msg("employee deleted")

	return nil
}
