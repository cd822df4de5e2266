package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"github.com/peopledesk/hrms-backend/internal/hrms/events"
	"github.com/peopledesk/hrms-backend/internal/hrms/handler"
	"github.com/peopledesk/hrms-backend/internal/hrms/repository"
	"github.com/peopledesk/hrms-backend/internal/hrms/service"
	"github.com/peopledesk/hrms-backend/pkg/database"
	"github.com/peopledesk/hrms-backend/pkg/httputil"
	"github.com/peopledesk/hrms-backend/pkg/logger"
	"github.com/peopledesk/hrms-backend/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	mockDB *testutil.MockDB
	sink   *testutil.MockPublisher
	router *chi.Mux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	log := logger.New("test", "development")
	db := database.NewWithDB(mockDB.DB, log)
	sink := testutil.NewMockPublisher()
	publisher := events.NewHRMSEventPublisherWithSink(sink, log)

	employeeRepo := repository.NewEmployeeRepository(db)
	leaveRepo := repository.NewLeaveRepository(db)

	employeeHandler := handler.NewEmployeeHandler(
		service.NewEmployeeService(employeeRepo, publisher, log), log)
	leaveHandler := handler.NewLeaveHandler(
		service.NewLeaveService(leaveRepo, publisher, log), log)

	r := chi.NewRouter()
	r.Route("/api/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.List)
		r.Post("/", employeeHandler.Create)
		r.Get("/{id}", employeeHandler.Get)
	})
	r.Route("/api/leave-requests", func(r chi.Router) {
		r.Post("/", leaveHandler.Submit)
		r.Put("/{id}/approve", leaveHandler.Approve)
	})

	return &testServer{mockDB: mockDB, sink: sink, router: r}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, httputil.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCreateEmployee_ValidationEnvelope(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodPost, "/api/employees", map[string]interface{}{
		"name":  "",
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Errors, "Name")
	assert.Contains(t, resp.Errors, "Email")

	ts.sink.AssertNoEventsPublished(t)
	ts.mockDB.ExpectationsWereMet(t)
}

func TestCreateEmployee_NameTooShort(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodPost, "/api/employees", map[string]interface{}{
		"name":        "J",
		"email":       "j@example.com",
		"department":  "Engineering",
		"position":    "Engineer",
		"base_salary": 85000,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Errors, "Name")

	ts.sink.AssertNoEventsPublished(t)
	ts.mockDB.ExpectationsWereMet(t)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	ts.mockDB.ExpectQuery("SELECT nextval('employee_business_id_seq')").
		WillReturnRows(testutil.MockRows("nextval").AddRow(int64(2)))
	ts.mockDB.ExpectQuery("INSERT INTO employees").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "employees_email_key"})

	rec, resp := ts.do(t, http.MethodPost, "/api/employees", map[string]interface{}{
		"name":        "Jane Doe",
		"email":       "jane@example.com",
		"department":  "Engineering",
		"position":    "Engineer",
		"base_salary": 85000,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Email already exists", resp.Message)

	ts.sink.AssertNoEventsPublished(t)
	ts.mockDB.ExpectationsWereMet(t)
}

func TestGetEmployee_NotFound(t *testing.T) {
	ts := newTestServer(t)

	ts.mockDB.ExpectQuery("FROM employees WHERE employee_id =").
		WithArgs("EMP999").
		WillReturnRows(testutil.MockRows("id"))

	rec, resp := ts.do(t, http.MethodGet, "/api/employees/EMP999", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "employee not found", resp.Message)

	ts.mockDB.ExpectationsWereMet(t)
}

func TestListEmployees_InternalErrorLogged(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	var logBuf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&logBuf)}

	db := database.NewWithDB(mockDB.DB, log)
	publisher := events.NewHRMSEventPublisherWithSink(testutil.NewMockPublisher(), log)
	h := handler.NewEmployeeHandler(
		service.NewEmployeeService(repository.NewEmployeeRepository(db), publisher, log), log)

	mockDB.ExpectQuery("FROM employees ORDER BY").
		WillReturnError(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/api/employees", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	assert.Contains(t, logBuf.String(), "request failed")
	assert.Contains(t, logBuf.String(), assert.AnError.Error())

	mockDB.ExpectationsWereMet(t)
}

func TestSubmitLeaveRequest_EndToEnd(t *testing.T) {
	ts := newTestServer(t)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	ts.mockDB.ExpectQuery("INSERT INTO leave_requests").
		WithArgs("EMP001", "Annual Leave", start, end, 5, "Family vacation", testutil.AnyTime{}).
		WillReturnRows(testutil.MockRows("id", "status", "created_at").
			AddRow(int64(1), "Pending", time.Now()))

	rec, resp := ts.do(t, http.MethodPost, "/api/leave-requests", map[string]interface{}{
		"employee_id": "EMP001",
		"leave_type":  "Annual Leave",
		"start_date":  "2024-02-01",
		"end_date":    "2024-02-05",
		"reason":      "Family vacation",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "success", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(5), data["days_requested"])
	assert.Equal(t, "Pending", data["status"])

	ts.mockDB.ExpectationsWereMet(t)
}

func TestSubmitLeaveRequest_InvalidType(t *testing.T) {
	ts := newTestServer(t)

	rec, resp := ts.do(t, http.MethodPost, "/api/leave-requests", map[string]interface{}{
		"employee_id": "EMP001",
		"leave_type":  "Sabbatical",
		"start_date":  "2024-02-01",
		"end_date":    "2024-02-05",
		"reason":      "Family vacation",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Errors, "LeaveType")

	ts.mockDB.ExpectationsWereMet(t)
}
