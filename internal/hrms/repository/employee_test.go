package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/logger"
	"github.com/peopledesk/hrms-backend/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*testutil.MockDB, *database.DB) {
	t.Helper()
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })
	return mockDB, database.NewWithDB(mockDB.DB, logger.New("test", "development"))
}

func TestEmployeeRepository_NextBusinessID(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	mockDB.ExpectQuery("SELECT nextval('employee_business_id_seq')").
		WillReturnRows(testutil.MockRows("nextval").AddRow(int64(1)))

	id, err := repo.NextBusinessID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EMP001", id)

	mockDB.ExpectQuery("SELECT nextval('employee_business_id_seq')").
		WillReturnRows(testutil.MockRows("nextval").AddRow(int64(1000)))

	id, err = repo.NextBusinessID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EMP1000", id)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Create(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	now := time.Now().UTC()
	mockDB.ExpectQuery("INSERT INTO employees").
		WithArgs("EMP001", "Jane Doe", "jane@example.com", "Engineering", "Engineer",
			decimal.NewFromInt(85000), decimal.NewFromInt(5000), decimal.NewFromInt(3200),
			"Active", testutil.AnyTime{}).
		WillReturnRows(testutil.MockRows("id", "created_at", "updated_at").
			AddRow(int64(1), now, now))

	emp := &repository.Employee{
		EmployeeID: "EMP001",
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Department: "Engineering",
		Position:   "Engineer",
		BaseSalary: decimal.NewFromInt(85000),
		Allowances: decimal.NewFromInt(5000),
		Deductions: decimal.NewFromInt(3200),
		Status:     "Active",
		HireDate:   now,
	}
	err := repo.Create(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), emp.ID)

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_GetByBusinessID_NotFound(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	mockDB.ExpectQuery("FROM employees WHERE employee_id =").
		WithArgs("EMP999").
		WillReturnRows(testutil.MockRows("id"))

	_, err := repo.GetByBusinessID(context.Background(), "EMP999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Update_NotFound(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	mockDB.ExpectExec("UPDATE employees SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	emp := &repository.Employee{EmployeeID: "EMP404", Name: "Nobody"}
	err := repo.Update(context.Background(), emp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}

func TestEmployeeRepository_Delete(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewEmployeeRepository(db)

	mockDB.ExpectExec("DELETE FROM employees WHERE employee_id =").
		WithArgs("EMP001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "EMP001")
	require.NoError(t, err)

	mockDB.ExpectExec("DELETE FROM employees WHERE employee_id =").
		WithArgs("EMP001").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), "EMP001")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	mockDB.ExpectationsWereMet(t)
}
