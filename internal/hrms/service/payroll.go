package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/peopledesk/hrms-backend/internal/hrms/accounting"
	"github.com/peopledesk/hrms-backend/internal/hrms/events"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// PayrollService handles payroll business logic
type PayrollService struct {
	payrollRepo  *repository.PayrollRepository
	employeeRepo *repository.EmployeeRepository
	publisher    *events.HRMSEventPublisher
	logger       *logger.Logger
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	payrollRepo *repository.PayrollRepository,
	employeeRepo *repository.EmployeeRepository,
	publisher *events.HRMSEventPublisher,
	log *logger.Logger,
) *PayrollService {
	return &PayrollService{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		logger:       log,
	}
}

// List lists payroll records with optional filters
func (s *PayrollService) List(ctx context.Context, params repository.PayrollListParams) ([]*repository.PayrollRecord, error) {
	return s.payrollRepo.List(ctx, params)
}

// Get gets a payroll record by id
func (s *PayrollService) Get(ctx context.Context, id int64) (*repository.PayrollRecord, error) {
	return s.payrollRepo.GetByID(ctx, id)
}

// Process runs payroll for every Active employee over the given period.
// All records are written in one transaction: a failure for any employee,
// including a period that was already processed, rolls back the whole run.
// Overtime columns are carried but no input path supplies them yet.
func (s *PayrollService) Process(ctx context.Context, periodStart, periodEnd time.Time) ([]*repository.PayrollRecord, error) {
	if periodEnd.Before(periodStart) {
		return nil, errors.Validation(map[string]string{
			"pay_period_end": "must not be before pay_period_start",
		})
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, errors.BadRequest("no active employees to process payroll for")
	}

	processedDate := time.Now().UTC().Truncate(24 * time.Hour)
	records := make([]*repository.PayrollRecord, 0, len(employees))

	for _, emp := range employees {
		breakdown, err := accounting.Payroll(
			emp.BaseSalary, emp.Allowances, emp.Deductions,
			decimal.Zero, decimal.Zero,
		)
		if err != nil {
			return nil, err
		}

		records = append(records, &repository.PayrollRecord{
			EmployeeID:     emp.EmployeeID,
			PayPeriodStart: periodStart,
			PayPeriodEnd:   periodEnd,
			BaseSalary:     emp.BaseSalary,
			Allowances:     emp.Allowances,
			OvertimeHours:  decimal.Zero,
			OvertimeRate:   decimal.Zero,
			Deductions:     emp.Deductions,
			GrossPay:       breakdown.GrossPay,
			NetPay:         breakdown.NetPay,
			Status:         "Processed",
			ProcessedDate:  &processedDate,
		})
	}

	if err := s.payrollRepo.CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	s.publisher.PublishPayrollProcessed(ctx,
		periodStart.Format(dateLayout), periodEnd.Format(dateLayout), len(records))

	s.logger.Info().
		Str("period_start", periodStart.Format(dateLayout)).
		Str("period_end", periodEnd.Format(dateLayout)).
		Int("employees", len(records)).
		Msg("payroll processed")

	return records, nil
}

// Payslip renders a processed payroll record as a PDF
func (s *PayrollService) Payslip(ctx context.Context, id int64) ([]byte, error) {
	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != "Processed" && rec.Status != "Paid" {
		return nil, errors.Conflict("payslip is only available once payroll has been processed")
	}

	name := rec.EmployeeID
	if rec.EmployeeName != nil {
		name = *rec.EmployeeName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", name, rec.EmployeeID))
	pdf.Ln(7)
	if rec.Department != nil && rec.Position != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s, %s", *rec.Department, *rec.Position))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s",
		rec.PayPeriodStart.Format(dateLayout), rec.PayPeriodEnd.Format(dateLayout)))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Base salary: %s", rec.BaseSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %s", rec.Allowances.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", rec.Deductions.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross pay: %s", rec.GrossPay.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", rec.NetPay.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}

	s.logger.Info().
		Int64("payroll_id", id).
		Str("employee_id", rec.EmployeeID).
		Msg("payslip rendered")

	return buf.Bytes(), nil
}

// Stats summarizes the current month's payroll
func (s *PayrollService) Stats(ctx context.Context) (*repository.PayrollStats, error) {
	return s.payrollRepo.Stats(ctx)
}
