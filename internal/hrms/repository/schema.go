package repository

import (
	"context"
	"fmt"

	"github.com/peopledesk/hrms-backend/pkg/database"
)

// schema is applied at startup. Statements are idempotent so restarts are safe.
//
// The employee business id comes from employee_business_id_seq, never from a
// max-row scan: the sequence survives deletions, so ids are monotonic and
// never reused. The UNIQUE constraints on (employee_id, date) and
// (employee_id, pay_period_start, pay_period_end) are the storage-level
// guards behind the attendance upsert and the payroll re-run rejection.
var schema = []string{
	`CREATE SEQUENCE IF NOT EXISTS employee_business_id_seq START 1`,

	`CREATE TABLE IF NOT EXISTS employees (
		id            SERIAL PRIMARY KEY,
		employee_id   VARCHAR(20) NOT NULL UNIQUE,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		department    VARCHAR(100) NOT NULL,
		position      VARCHAR(100) NOT NULL,
		base_salary   NUMERIC(10,2) NOT NULL DEFAULT 0,
		allowances    NUMERIC(10,2) NOT NULL DEFAULT 0,
		deductions    NUMERIC(10,2) NOT NULL DEFAULT 0,
		status        VARCHAR(20) NOT NULL DEFAULT 'Active',
		hire_date     DATE NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT employees_email_key UNIQUE (email),
		CONSTRAINT salary_non_negative CHECK (
			base_salary >= 0 AND allowances >= 0 AND deductions >= 0
		),
		CONSTRAINT employee_status_valid CHECK (
			status IN ('Active', 'On Leave', 'Inactive')
		)
	)`,

	`CREATE TABLE IF NOT EXISTS attendance (
		id          SERIAL PRIMARY KEY,
		employee_id VARCHAR(20) NOT NULL
			REFERENCES employees(employee_id) ON DELETE CASCADE,
		date        DATE NOT NULL,
		check_in    TIME,
		check_out   TIME,
		total_hours NUMERIC(4,2) NOT NULL DEFAULT 0,
		status      VARCHAR(20) NOT NULL DEFAULT 'Present',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT attendance_employee_date_key UNIQUE (employee_id, date),
		CONSTRAINT attendance_status_valid CHECK (
			status IN ('Present', 'Absent', 'Late', 'Half Day')
		)
	)`,

	`CREATE TABLE IF NOT EXISTS leave_requests (
		id             SERIAL PRIMARY KEY,
		employee_id    VARCHAR(20) NOT NULL
			REFERENCES employees(employee_id) ON DELETE CASCADE,
		leave_type     VARCHAR(50) NOT NULL,
		start_date     DATE NOT NULL,
		end_date       DATE NOT NULL,
		days_requested INT NOT NULL,
		reason         TEXT NOT NULL,
		status         VARCHAR(20) NOT NULL DEFAULT 'Pending',
		applied_date   DATE NOT NULL,
		approved_by    VARCHAR(255),
		approved_date  DATE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT leave_type_valid CHECK (
			leave_type IN ('Annual Leave', 'Sick Leave', 'Personal Leave', 'Emergency Leave')
		),
		CONSTRAINT leave_status_valid CHECK (
			status IN ('Pending', 'Approved', 'Rejected')
		)
	)`,

	`CREATE TABLE IF NOT EXISTS payroll (
		id               SERIAL PRIMARY KEY,
		employee_id      VARCHAR(20) NOT NULL
			REFERENCES employees(employee_id) ON DELETE CASCADE,
		pay_period_start DATE NOT NULL,
		pay_period_end   DATE NOT NULL,
		base_salary      NUMERIC(10,2) NOT NULL DEFAULT 0,
		allowances       NUMERIC(10,2) NOT NULL DEFAULT 0,
		overtime_hours   NUMERIC(6,2) NOT NULL DEFAULT 0,
		overtime_rate    NUMERIC(10,2) NOT NULL DEFAULT 0,
		deductions       NUMERIC(10,2) NOT NULL DEFAULT 0,
		gross_pay        NUMERIC(10,2) NOT NULL DEFAULT 0,
		net_pay          NUMERIC(10,2) NOT NULL DEFAULT 0,
		status           VARCHAR(20) NOT NULL DEFAULT 'Pending',
		processed_date   DATE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT payroll_pay_period_key UNIQUE (employee_id, pay_period_start, pay_period_end),
		CONSTRAINT payroll_status_valid CHECK (
			status IN ('Pending', 'Processed', 'Paid')
		)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance(date)`,
	`CREATE INDEX IF NOT EXISTS idx_leave_requests_status ON leave_requests(status)`,
	`CREATE INDEX IF NOT EXISTS idx_payroll_period ON payroll(pay_period_start, pay_period_end)`,
}

// Migrate applies the schema. Called once at startup before the server
// accepts traffic.
func Migrate(ctx context.Context, db *database.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
