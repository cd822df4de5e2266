package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// PayrollRecord is one employee's pay for one period. The unique constraint
// on (employee_id, pay_period_start, pay_period_end) rejects re-runs.
type PayrollRecord struct {
	ID             int64           `db:"id" json:"id"`
	EmployeeID     string          `db:"employee_id" json:"employee_id"`
	PayPeriodStart time.Time       `db:"pay_period_start" json:"pay_period_start"`
	PayPeriodEnd   time.Time       `db:"pay_period_end" json:"pay_period_end"`
	BaseSalary     decimal.Decimal `db:"base_salary" json:"base_salary"`
	Allowances     decimal.Decimal `db:"allowances" json:"allowances"`
	OvertimeHours  decimal.Decimal `db:"overtime_hours" json:"overtime_hours"`
	OvertimeRate   decimal.Decimal `db:"overtime_rate" json:"overtime_rate"`
	Deductions     decimal.Decimal `db:"deductions" json:"deductions"`
	GrossPay       decimal.Decimal `db:"gross_pay" json:"gross_pay"`
	NetPay         decimal.Decimal `db:"net_pay" json:"net_pay"`
	Status         string          `db:"status" json:"status"`
	ProcessedDate  *time.Time      `db:"processed_date" json:"processed_date,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`

	// Joined fields
	EmployeeName *string `db:"employee_name" json:"employee_name,omitempty"`
	Department   *string `db:"department" json:"department,omitempty"`
	Position     *string `db:"position" json:"position,omitempty"`
}

// PayrollListParams holds filters for listing payroll records
type PayrollListParams struct {
	EmployeeID *string
	Status     *string
	Month      *int
	Year       *int
}

// PayrollStats summarizes the current month's payroll
type PayrollStats struct {
	TotalRecords  int             `db:"total_records" json:"total_records"`
	Processed     int             `db:"processed" json:"processed"`
	Pending       int             `db:"pending" json:"pending"`
	TotalGross    decimal.Decimal `db:"total_gross" json:"total_gross"`
	TotalNet      decimal.Decimal `db:"total_net" json:"total_net"`
	AverageSalary decimal.Decimal `db:"average_salary" json:"average_salary"`
}

// PayrollRepository handles payroll persistence
type PayrollRepository struct {
	db *database.DB
}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository(db *database.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

const payrollSelect = `
	SELECT p.id, p.employee_id, p.pay_period_start, p.pay_period_end,
	       p.base_salary, p.allowances, p.overtime_hours, p.overtime_rate,
	       p.deductions, p.gross_pay, p.net_pay, p.status, p.processed_date,
	       p.created_at,
	       e.name as employee_name, e.department, e.position
	FROM payroll p
	LEFT JOIN employees e ON p.employee_id = e.employee_id
`

// GetByID gets a payroll record by id, with employee details joined in
func (r *PayrollRepository) GetByID(ctx context.Context, id int64) (*PayrollRecord, error) {
	var rec PayrollRecord
	query := payrollSelect + ` WHERE p.id = $1`
	err := r.db.GetContext(ctx, &rec, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("payroll record")
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List lists payroll records with optional filters, newest period first.
// Month and year filter on the period start date.
func (r *PayrollRepository) List(ctx context.Context, params PayrollListParams) ([]*PayrollRecord, error) {
	query := payrollSelect + ` WHERE 1=1`
	args := []interface{}{}

	if params.EmployeeID != nil {
		args = append(args, *params.EmployeeID)
		query += fmt.Sprintf(" AND p.employee_id = $%d", len(args))
	}
	if params.Status != nil {
		args = append(args, *params.Status)
		query += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if params.Month != nil {
		args = append(args, *params.Month)
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM p.pay_period_start) = $%d", len(args))
	}
	if params.Year != nil {
		args = append(args, *params.Year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM p.pay_period_start) = $%d", len(args))
	}

	query += ` ORDER BY p.pay_period_start DESC, p.employee_id`

	var records []*PayrollRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateBatch inserts one record per employee for a period inside a single
// transaction. Any failure, including a duplicate period for any employee,
// rolls back the whole batch.
func (r *PayrollRepository) CreateBatch(ctx context.Context, records []*PayrollRecord) error {
	return r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO payroll (
				employee_id, pay_period_start, pay_period_end,
				base_salary, allowances, overtime_hours, overtime_rate,
				deductions, gross_pay, net_pay, status, processed_date
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at
		`
		for _, rec := range records {
			err := tx.QueryRowxContext(ctx, query,
				rec.EmployeeID, rec.PayPeriodStart, rec.PayPeriodEnd,
				rec.BaseSalary, rec.Allowances, rec.OvertimeHours, rec.OvertimeRate,
				rec.Deductions, rec.GrossPay, rec.NetPay, rec.Status, rec.ProcessedDate,
			).Scan(&rec.ID, &rec.CreatedAt)
			if err != nil {
				if appErr := database.MapPQError(err); appErr != nil {
					return appErr
				}
				return err
			}
		}
		return nil
	})
}

// Stats summarizes payroll for periods starting in the current month
func (r *PayrollRepository) Stats(ctx context.Context) (*PayrollStats, error) {
	var stats PayrollStats
	query := `
		SELECT COUNT(*) as total_records,
		       COUNT(*) FILTER (WHERE status = 'Processed') as processed,
		       COUNT(*) FILTER (WHERE status = 'Pending') as pending,
		       COALESCE(SUM(gross_pay), 0) as total_gross,
		       COALESCE(SUM(net_pay), 0) as total_net,
		       COALESCE(ROUND(AVG(net_pay), 2), 0) as average_salary
		FROM payroll
		WHERE date_trunc('month', pay_period_start) = date_trunc('month', CURRENT_DATE)
	`
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
