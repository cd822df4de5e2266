package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/shopspring/decimal"
)

// Attendance is one employee-day attendance row. Check-in and check-out are
// "HH:MM" times of day; either may be absent.
type Attendance struct {
	ID         int64           `db:"id" json:"id"`
	EmployeeID string          `db:"employee_id" json:"employee_id"`
	Date       time.Time       `db:"date" json:"date"`
	CheckIn    *string         `db:"check_in" json:"check_in,omitempty"`
	CheckOut   *string         `db:"check_out" json:"check_out,omitempty"`
	TotalHours decimal.Decimal `db:"total_hours" json:"total_hours"`
	Status     string          `db:"status" json:"status"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`

	// Joined fields
	EmployeeName *string `db:"employee_name" json:"employee_name,omitempty"`
}

// AttendanceListParams holds filters for listing attendance records
type AttendanceListParams struct {
	Date       *time.Time
	EmployeeID *string
}

// AttendanceStats is the per-date status breakdown
type AttendanceStats struct {
	Total        int             `db:"total" json:"total"`
	Present      int             `db:"present" json:"present"`
	Absent       int             `db:"absent" json:"absent"`
	Late         int             `db:"late" json:"late"`
	HalfDay      int             `db:"half_day" json:"half_day"`
	AverageHours decimal.Decimal `db:"average_hours" json:"average_hours"`
}

// AttendanceRepository handles attendance persistence
type AttendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts or replaces the record for (employee_id, date). The unique
// constraint does the conflict detection, so two concurrent calls can never
// leave two rows for the same day. The second write wins in full.
func (r *AttendanceRepository) Upsert(ctx context.Context, att *Attendance) error {
	query := `
		INSERT INTO attendance (employee_id, date, check_in, check_out, total_hours, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			total_hours = EXCLUDED.total_hours,
			status = EXCLUDED.status
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.CheckOut, att.TotalHours, att.Status,
	).Scan(&att.ID, &att.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// List lists attendance records with optional date and employee filters,
// newest date first
func (r *AttendanceRepository) List(ctx context.Context, params AttendanceListParams) ([]*Attendance, error) {
	query := `
		SELECT a.id, a.employee_id, a.date,
		       to_char(a.check_in, 'HH24:MI') as check_in,
		       to_char(a.check_out, 'HH24:MI') as check_out,
		       a.total_hours, a.status, a.created_at,
		       e.name as employee_name
		FROM attendance a
		LEFT JOIN employees e ON a.employee_id = e.employee_id
		WHERE 1=1
	`
	args := []interface{}{}

	if params.Date != nil {
		args = append(args, *params.Date)
		query += fmt.Sprintf(" AND a.date = $%d", len(args))
	}
	if params.EmployeeID != nil {
		args = append(args, *params.EmployeeID)
		query += fmt.Sprintf(" AND a.employee_id = $%d", len(args))
	}

	query += ` ORDER BY a.date DESC, a.employee_id`

	var records []*Attendance
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

// Stats returns the status breakdown for one date
func (r *AttendanceRepository) Stats(ctx context.Context, date time.Time) (*AttendanceStats, error) {
	var stats AttendanceStats
	query := `
		SELECT COUNT(*) as total,
		       COUNT(*) FILTER (WHERE status = 'Present') as present,
		       COUNT(*) FILTER (WHERE status = 'Absent') as absent,
		       COUNT(*) FILTER (WHERE status = 'Late') as late,
		       COUNT(*) FILTER (WHERE status = 'Half Day') as half_day,
		       COALESCE(ROUND(AVG(total_hours), 2), 0) as average_hours
		FROM attendance
		WHERE date = $1
	`
	if err := r.db.GetContext(ctx, &stats, query, date); err != nil {
		return nil, err
	}
	return &stats, nil
}
