package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayrollRecord(employeeID string) *repository.PayrollRecord {
	processed := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	return &repository.PayrollRecord{
		EmployeeID:     employeeID,
		PayPeriodStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		BaseSalary:     decimal.NewFromInt(85000),
		Allowances:     decimal.NewFromInt(5000),
		OvertimeHours:  decimal.Zero,
		OvertimeRate:   decimal.Zero,
		Deductions:     decimal.NewFromInt(3200),
		GrossPay:       decimal.NewFromInt(90000),
		NetPay:         decimal.NewFromInt(86800),
		Status:         "Processed",
		ProcessedDate:  &processed,
	}
}

func TestPayrollRepository_CreateBatch(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewPayrollRepository(db)

	mockDB.ExpectBegin()
	for i := 1; i <= 2; i++ {
		mockDB.ExpectQuery("INSERT INTO payroll").
			WillReturnRows(testutil.MockRows("id", "created_at").
				AddRow(int64(i), time.Now()))
	}
	mockDB.ExpectCommit()

	records := []*repository.PayrollRecord{
		testPayrollRecord("EMP001"),
		testPayrollRecord("EMP002"),
	}
	err := repo.CreateBatch(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)

	mockDB.ExpectationsWereMet(t)
}

func TestPayrollRepository_CreateBatch_DuplicatePeriodRollsBack(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewPayrollRepository(db)

	mockDB.ExpectBegin()
	mockDB.ExpectQuery("INSERT INTO payroll").
		WillReturnRows(testutil.MockRows("id", "created_at").
			AddRow(int64(1), time.Now()))
	mockDB.ExpectQuery("INSERT INTO payroll").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "payroll_pay_period_key"})
	mockDB.ExpectRollback()

	records := []*repository.PayrollRecord{
		testPayrollRecord("EMP001"),
		testPayrollRecord("EMP002"),
	}
	err := repo.CreateBatch(context.Background(), records)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))

	mockDB.ExpectationsWereMet(t)
}

func TestPayrollRepository_GetByID_NotFound(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewPayrollRepository(db)

	mockDB.ExpectQuery("FROM payroll p").
		WithArgs(int64(404)).
		WillReturnRows(testutil.MockRows("id"))

	_, err := repo.GetByID(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestPayrollRepository_Stats(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewPayrollRepository(db)

	mockDB.ExpectQuery("FROM payroll WHERE date_trunc").
		WillReturnRows(testutil.MockRows("total_records", "processed", "pending", "total_gross", "total_net", "average_salary").
			AddRow(2, 1, 1, "180000.00", "173600.00", "86800.00"))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Pending)
	assert.True(t, stats.TotalNet.Equal(decimal.RequireFromString("173600")))
	assert.True(t, stats.AverageSalary.Equal(decimal.RequireFromString("86800")))

	mockDB.ExpectationsWereMet(t)
}
