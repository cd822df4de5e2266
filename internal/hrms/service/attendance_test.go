package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/peopledesk/hrms-backend/internal/hrms/events"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/internal/hrms/service"
	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/peopledesk/hrms-backend/pkg/errors"
	"github.com/peopledesk/hrms-backend/pkg/logger"
	"github.com/peopledesk/hrms-backend/pkg/messaging"
	"github.com/peopledesk/hrms-backend/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceDeps(t *testing.T) (*testutil.MockDB, *database.DB, *testutil.MockPublisher, *events.HRMSEventPublisher) {
	t.Helper()
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	log := logger.New("test", "development")
	db := database.NewWithDB(mockDB.DB, log)
	sink := testutil.NewMockPublisher()
	publisher := events.NewHRMSEventPublisherWithSink(sink, log)
	return mockDB, db, sink, publisher
}

func strPtr(s string) *string { return &s }

func TestAttendanceService_Mark(t *testing.T) {
	mockDB, db, sink, publisher := newServiceDeps(t)
	log := logger.New("test", "development")
	svc := service.NewAttendanceService(repository.NewAttendanceRepository(db), publisher, log)

	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mockDB.ExpectQuery("INSERT INTO attendance").
		WithArgs("EMP001", day, "09:00", "17:30", decimal.RequireFromString("8.5"), "Present").
		WillReturnRows(testutil.MockRows("id", "created_at").AddRow(int64(1), time.Now()))

	att, err := svc.Mark(context.Background(), service.MarkAttendanceInput{
		EmployeeID: "EMP001",
		Date:       day,
		CheckIn:    strPtr("09:00"),
		CheckOut:   strPtr("17:30"),
	})
	require.NoError(t, err)
	assert.True(t, att.TotalHours.Equal(decimal.RequireFromString("8.5")))
	assert.Equal(t, "Present", att.Status, "status defaults to Present")

	sink.AssertEventPublished(t, messaging.EventAttendanceMarked)
	mockDB.ExpectationsWereMet(t)
}

func TestAttendanceService_Mark_InvalidTime(t *testing.T) {
	mockDB, db, sink, publisher := newServiceDeps(t)
	log := logger.New("test", "development")
	svc := service.NewAttendanceService(repository.NewAttendanceRepository(db), publisher, log)

	_, err := svc.Mark(context.Background(), service.MarkAttendanceInput{
		EmployeeID: "EMP001",
		Date:       time.Now(),
		CheckIn:    strPtr("nine"),
		CheckOut:   strPtr("17:30"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	sink.AssertNoEventsPublished(t)
	mockDB.ExpectationsWereMet(t)
}
