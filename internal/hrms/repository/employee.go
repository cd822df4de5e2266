package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/peopledesk/hrms-backend/internal/hrms/accounting"
	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Employee is an employee row. EmployeeID is the business key (EMP###)
// referenced by attendance, leave and payroll records.
type Employee struct {
	ID         int64           `db:"id" json:"-"`
	EmployeeID string          `db:"employee_id" json:"employee_id"`
	Name       string          `db:"name" json:"name"`
	Email      string          `db:"email" json:"email"`
	Department string          `db:"department" json:"department"`
	Position   string          `db:"position" json:"position"`
	BaseSalary decimal.Decimal `db:"base_salary" json:"base_salary"`
	Allowances decimal.Decimal `db:"allowances" json:"allowances"`
	Deductions decimal.Decimal `db:"deductions" json:"deductions"`
	Status     string          `db:"status" json:"status"`
	HireDate   time.Time       `db:"hire_date" json:"hire_date"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// EmployeeRepository handles employee persistence
type EmployeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, employee_id, name, email, department, position,
	       base_salary, allowances, deductions, status, hire_date,
	       created_at, updated_at`

// NextBusinessID issues the next business id from the dedicated sequence.
// The sequence is never reset on deletes, so ids stay monotonic.
func (r *EmployeeRepository) NextBusinessID(ctx context.Context) (string, error) {
	var n int64
	query := `SELECT nextval('employee_business_id_seq')`
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return "", err
	}
	return accounting.FormatEmployeeID(n), nil
}

// Create inserts a new employee. The business id must already be issued.
func (r *EmployeeRepository) Create(ctx context.Context, emp *Employee) error {
	query := `
		INSERT INTO employees (
			employee_id, name, email, department, position,
			base_salary, allowances, deductions, status, hire_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		emp.EmployeeID, emp.Name, emp.Email, emp.Department, emp.Position,
		emp.BaseSalary, emp.Allowances, emp.Deductions, emp.Status, emp.HireDate,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// GetByBusinessID gets an employee by business id
func (r *EmployeeRepository) GetByBusinessID(ctx context.Context, employeeID string) (*Employee, error) {
	var emp Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	err := r.db.GetContext(ctx, &emp, query, employeeID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// List lists all employees, newest first
func (r *EmployeeRepository) List(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, err
	}
	return employees, nil
}

// ListActive lists employees eligible for payroll processing
func (r *EmployeeRepository) ListActive(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = 'Active' ORDER BY employee_id`
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, err
	}
	return employees, nil
}

// Update updates an employee's profile fields
func (r *EmployeeRepository) Update(ctx context.Context, emp *Employee) error {
	query := `
		UPDATE employees SET
			name = $2, email = $3, department = $4, position = $5,
			base_salary = $6, allowances = $7, deductions = $8, status = $9,
			updated_at = NOW()
		WHERE employee_id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		emp.EmployeeID, emp.Name, emp.Email, emp.Department, emp.Position,
		emp.BaseSalary, emp.Allowances, emp.Deductions, emp.Status,
	)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("employee")
	}
	return nil
}

// Delete removes an employee. Attendance, leave and payroll rows cascade.
func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	query := `DELETE FROM employees WHERE employee_id = $1`
	result, err := r.db.ExecContext(ctx, query, employeeID)
	if err != nil {
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return errors.NotFound("employee")
	}
	return nil
}
