package repository

import (
	"context"
	"time"

	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/shopspring/decimal"
)

// DashboardStats is the aggregate view backing the dashboard landing page
type DashboardStats struct {
	TotalEmployees  int             `db:"total_employees" json:"total_employees"`
	ActiveEmployees int             `db:"active_employees" json:"active_employees"`
	PresentToday    int             `db:"present_today" json:"present_today"`
	PendingLeaves   int             `db:"pending_leaves" json:"pending_leaves"`
	MonthlyPayroll  decimal.Decimal `db:"monthly_payroll" json:"monthly_payroll"`
}

// ActivityItem is one entry of the merged recent-activity feed
type ActivityItem struct {
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	OccurredAt  time.Time `db:"occurred_at" json:"occurred_at"`
}

// DashboardRepository aggregates across all four tables
type DashboardRepository struct {
	db *database.DB
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *database.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats returns headline counts and the current month's net payroll total
func (r *DashboardRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM employees) as total_employees,
			(SELECT COUNT(*) FROM employees WHERE status = 'Active') as active_employees,
			(SELECT COUNT(*) FROM attendance WHERE date = CURRENT_DATE AND status = 'Present') as present_today,
			(SELECT COUNT(*) FROM leave_requests WHERE status = 'Pending') as pending_leaves,
			(SELECT COALESCE(SUM(net_pay), 0) FROM payroll
			 WHERE date_trunc('month', pay_period_start) = date_trunc('month', CURRENT_DATE)) as monthly_payroll
	`
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentActivity merges the newest leave submissions and processed payroll
// runs into one feed, five entries at most
func (r *DashboardRepository) RecentActivity(ctx context.Context) ([]*ActivityItem, error) {
	var items []*ActivityItem
	query := `
		SELECT * FROM (
			SELECT 'leave' as type,
			       e.name || ' requested ' || l.leave_type as description,
			       l.created_at as occurred_at
			FROM leave_requests l
			JOIN employees e ON l.employee_id = e.employee_id
			ORDER BY l.created_at DESC
			LIMIT 3
		) leave_activity
		UNION ALL
		SELECT * FROM (
			SELECT 'payroll' as type,
			       'Payroll processed for ' || e.name as description,
			       p.created_at as occurred_at
			FROM payroll p
			JOIN employees e ON p.employee_id = e.employee_id
			WHERE p.status = 'Processed'
			ORDER BY p.created_at DESC
			LIMIT 2
		) payroll_activity
		ORDER BY occurred_at DESC
		LIMIT 5
	`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}
