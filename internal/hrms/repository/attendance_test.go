package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAttendanceRepository_Upsert(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewAttendanceRepository(db)

	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mockDB.ExpectQuery("INSERT INTO attendance").
		WithArgs("EMP001", day, "09:00", "17:30", decimal.RequireFromString("8.5"), "Present").
		WillReturnRows(testutil.MockRows("id", "created_at").AddRow(int64(7), time.Now()))

	att := &repository.Attendance{
		EmployeeID: "EMP001",
		Date:       day,
		CheckIn:    strPtr("09:00"),
		CheckOut:   strPtr("17:30"),
		TotalHours: decimal.RequireFromString("8.5"),
		Status:     "Present",
	}
	err := repo.Upsert(context.Background(), att)
	require.NoError(t, err)
	assert.Equal(t, int64(7), att.ID)

	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_List_Filters(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewAttendanceRepository(db)

	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := testutil.MockRows(
		"id", "employee_id", "date", "check_in", "check_out",
		"total_hours", "status", "created_at", "employee_name",
	).AddRow(int64(1), "EMP001", day, "09:00", "17:30", "8.50", "Present", time.Now(), "Jane Doe")

	mockDB.ExpectQuery("FROM attendance a").
		WithArgs(day, "EMP001").
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), repository.AttendanceListParams{
		Date:       &day,
		EmployeeID: strPtr("EMP001"),
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "EMP001", records[0].EmployeeID)
	assert.Equal(t, "09:00", *records[0].CheckIn)
	assert.True(t, records[0].TotalHours.Equal(decimal.RequireFromString("8.5")))

	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceRepository_Stats(t *testing.T) {
	mockDB, db := newTestDB(t)
	repo := repository.NewAttendanceRepository(db)

	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mockDB.ExpectQuery("FROM attendance WHERE date =").
		WithArgs(day).
		WillReturnRows(testutil.MockRows("total", "present", "absent", "late", "half_day", "average_hours").
			AddRow(10, 7, 1, 1, 1, "7.80"))

	stats, err := repo.Stats(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 7, stats.Present)
	assert.Equal(t, 1, stats.HalfDay)
	assert.True(t, stats.AverageHours.Equal(decimal.RequireFromString("7.8")))

	mockDB.ExpectationsWereMet(t)
}
