package database

import (
	"strings"

	"github.com/lib/pq"
	"github.com/peopledesk/hrms-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Check constraint violation (23514)
	case "23514":
		return mapCheckConstraint(pqErr)

	// Unique constraint violation (23505)
	case "23505":
		return mapUniqueConstraint(pqErr)

	// Foreign key violation (23503)
	case "23503":
		return errors.BadRequest("referenced employee does not exist")

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	default:
		return nil
	}
}

// mapCheckConstraint maps specific CHECK constraint names to user-friendly messages.
func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "salary_non_negative"):
		return errors.Validation(map[string]string{
			"base_salary": "salary components must not be negative",
		})

	case strings.Contains(constraint, "employee_status_valid"):
		return errors.Validation(map[string]string{
			"status": "must be one of: Active, On Leave, Inactive",
		})

	case strings.Contains(constraint, "attendance_status_valid"):
		return errors.Validation(map[string]string{
			"status": "must be one of: Present, Absent, Late, Half Day",
		})

	case strings.Contains(constraint, "leave_type_valid"):
		return errors.Validation(map[string]string{
			"leave_type": "must be one of: Annual Leave, Sick Leave, Personal Leave, Emergency Leave",
		})

	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}

// mapUniqueConstraint creates a user-friendly error for unique constraint violations.
// Duplicate email keeps the original 400 contract; everything else is a conflict.
func mapUniqueConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "email"):
		return errors.BadRequest("Email already exists")
	case strings.Contains(constraint, "pay_period"):
		return errors.Conflict("payroll has already been processed for this period")
	default:
		return errors.Conflict("a record with these values already exists")
	}
}
