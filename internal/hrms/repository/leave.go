package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/peopledesk/hrms-backend/pkg/errors"
)

// LeaveRequest is one leave request row. Status moves Pending to Approved or
// Rejected, both terminal.
type LeaveRequest struct {
	ID            int64      `db:"id" json:"id"`
	EmployeeID    string     `db:"employee_id" json:"employee_id"`
	LeaveType     string     `db:"leave_type" json:"leave_type"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	EndDate       time.Time  `db:"end_date" json:"end_date"`
	DaysRequested int        `db:"days_requested" json:"days_requested"`
	Reason        string     `db:"reason" json:"reason"`
	Status        string     `db:"status" json:"status"`
	AppliedDate   time.Time  `db:"applied_date" json:"applied_date"`
	ApprovedBy    *string    `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedDate  *time.Time `db:"approved_date" json:"approved_date,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`

	// Joined fields
	EmployeeName *string `db:"employee_name" json:"employee_name,omitempty"`
}

// LeaveListParams holds filters for listing leave requests
type LeaveListParams struct {
	Status     *string
	EmployeeID *string
}

// LeaveStats is the current-month status breakdown
type LeaveStats struct {
	Total    int `db:"total" json:"total"`
	Pending  int `db:"pending" json:"pending"`
	Approved int `db:"approved" json:"approved"`
	Rejected int `db:"rejected" json:"rejected"`
}

// LeaveRepository handles leave request persistence
type LeaveRepository struct {
	db *database.DB
}

// NewLeaveRepository creates a new leave repository
func NewLeaveRepository(db *database.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// Create inserts a new leave request with status Pending
func (r *LeaveRepository) Create(ctx context.Context, req *LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type, start_date, end_date,
			days_requested, reason, status, applied_date
		) VALUES ($1, $2, $3, $4, $5, $6, 'Pending', $7)
		RETURNING id, status, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		req.EmployeeID, req.LeaveType, req.StartDate, req.EndDate,
		req.DaysRequested, req.Reason, req.AppliedDate,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}
	return nil
}

// GetByID gets a leave request by id
func (r *LeaveRepository) GetByID(ctx context.Context, id int64) (*LeaveRequest, error) {
	var req LeaveRequest
	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date,
		       l.days_requested, l.reason, l.status, l.applied_date,
		       l.approved_by, l.approved_date, l.created_at,
		       e.name as employee_name
		FROM leave_requests l
		LEFT JOIN employees e ON l.employee_id = e.employee_id
		WHERE l.id = $1
	`
	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("leave request")
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List lists leave requests with optional status and employee filters,
// newest application first
func (r *LeaveRepository) List(ctx context.Context, params LeaveListParams) ([]*LeaveRequest, error) {
	query := `
		SELECT l.id, l.employee_id, l.leave_type, l.start_date, l.end_date,
		       l.days_requested, l.reason, l.status, l.applied_date,
		       l.approved_by, l.approved_date, l.created_at,
		       e.name as employee_name
		FROM leave_requests l
		LEFT JOIN employees e ON l.employee_id = e.employee_id
		WHERE 1=1
	`
	args := []interface{}{}

	if params.Status != nil {
		args = append(args, *params.Status)
		query += fmt.Sprintf(" AND l.status = $%d", len(args))
	}
	if params.EmployeeID != nil {
		args = append(args, *params.EmployeeID)
		query += fmt.Sprintf(" AND l.employee_id = $%d", len(args))
	}

	query += ` ORDER BY l.applied_date DESC, l.id DESC`

	var requests []*LeaveRequest
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, err
	}
	return requests, nil
}

// Decide moves a Pending request to Approved or Rejected and stamps the
// approver. The status guard in the WHERE clause makes terminal states
// terminal: zero affected rows means the request is either absent (NotFound)
// or already decided (Conflict), told apart by a follow-up existence check.
func (r *LeaveRepository) Decide(ctx context.Context, id int64, status, approver string, decidedAt time.Time) error {
	query := `
		UPDATE leave_requests SET
			status = $2, approved_by = $3, approved_date = $4
		WHERE id = $1 AND status = 'Pending'
	`
	result, err := r.db.ExecContext(ctx, query, id, status, approver, decidedAt)
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		var exists bool
		check := `SELECT EXISTS (SELECT 1 FROM leave_requests WHERE id = $1)`
		if err := r.db.GetContext(ctx, &exists, check, id); err != nil {
			return err
		}
		if !exists {
			return errors.NotFound("leave request")
		}
		return errors.Conflict("leave request has already been decided")
	}
	return nil
}

// Stats returns the status breakdown for requests applied in the current month
func (r *LeaveRepository) Stats(ctx context.Context) (*LeaveStats, error) {
	var stats LeaveStats
	query := `
		SELECT COUNT(*) as total,
		       COUNT(*) FILTER (WHERE status = 'Pending') as pending,
		       COUNT(*) FILTER (WHERE status = 'Approved') as approved,
		       COUNT(*) FILTER (WHERE status = 'Rejected') as rejected
		FROM leave_requests
		WHERE date_trunc('month', applied_date) = date_trunc('month', CURRENT_DATE)
	`
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
