package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"hrms/internal/auth"
	"hrms/internal/metrics"
	"hrms/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	employeeCols   = []string{"id", "emp_no", "birth_date", "first_name", "last_name", "gender", "hire_date", "created_at", "updated_at"}
	departmentCols = []string{"id", "dept_no", "dept_name", "created_at", "updated_at"}
	userCols       = []string{"id", "username", "password_hash", "email", "phone", "full_name", "created_at", "updated_at"}
	stamp          = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	mock   sqlmock.Sqlmock
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	db := sqlx.NewDb(conn, "sqlmock")

	tokens := auth.NewTokenManager("router-secret", time.Hour)
	users := services.NewUserService(db)
	users.Hasher = auth.PasswordHasher{Cost: 4}
	authSvc := services.NewAuthService(users, tokens, zap.NewNop())
	authSvc.Hasher = auth.PasswordHasher{Cost: 4}

	r := NewRouter(Deps{
		DB:              db,
		Log:             zap.NewNop(),
		Metrics:         metrics.New(),
		Tokens:          tokens,
		Employees:       services.NewEmployeeService(db, nil, zap.NewNop()),
		Departments:     services.NewDepartmentService(db),
		Users:           users,
		Auth:            authSvc,
		AllowedOrigins:  []string{"*"},
		LoginRatePerMin: 30,
	})
	return &testServer{router: r, mock: mock, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token, _, err := s.tokens.Issue(1, "admin")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func q(s string) string { return regexp.QuoteMeta(s) }

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, status, body["status"])
	assert.Equal(t, msg, body["message"])
	assert.Nil(t, body["data"])
	assert.NotContains(t, body, "meta")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/health", "", false)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 200, body["status"])
	assert.Equal(t, "", body["message"])
	assert.Equal(t, "ok", body["data"].(map[string]any)["status"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/nope", "", false)
	assertError(t, rec, http.StatusNotFound, "Route GET /nope not found")
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/employees", "", false)
	assertError(t, rec, http.StatusUnauthorized, "Unauthorized")
}

func TestCreateDepartment(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectExec(q("INSERT INTO departments (dept_no, dept_name) VALUES (?, ?)")).
		WithArgs("d010", "Data").
		WillReturnResult(sqlmock.NewResult(10, 1))
	s.mock.ExpectQuery(q("FROM departments WHERE id = ?")).WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(departmentCols).AddRow(10, "d010", "Data", stamp, stamp))

	rec := s.do(t, http.MethodPost, "/departments", `{"deptNo":" d010 ","deptName":"Data"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, 201, body["status"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "d010", data["deptNo"])
	assert.Equal(t, "2024-01-02T03:04:05.000Z", data["createdAt"])
}

func TestCreateDepartmentValidation(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/departments", `{"deptNo":"d1","deptName":"Data"}`, true)
	assertError(t, rec, http.StatusBadRequest, "Validation failed: deptNo must be exactly 4 characters")
}

func TestUpdateMissingDepartment(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectExec(q("UPDATE departments SET dept_name = ? WHERE id = ?")).
		WithArgs("Renamed", int64(9999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectQuery(q("FROM departments WHERE id = ?")).WithArgs(int64(9999)).
		WillReturnRows(sqlmock.NewRows(departmentCols))

	rec := s.do(t, http.MethodPut, "/departments/9999", `{"deptName":"Renamed"}`, true)
	assertError(t, rec, http.StatusNotFound, "Department with ID 9999 not found")
}

func TestNonNumericID(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/departments/abc", "", true)
	assertError(t, rec, http.StatusBadRequest, "Validation failed: Numeric string is expected")
}

func TestListEmployeesWithMeta(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(q("SELECT COUNT(*) FROM employees")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(25))
	s.mock.ExpectQuery(q("FROM employees ORDER BY id ASC LIMIT ? OFFSET ?")).
		WithArgs(10, 10).
		WillReturnRows(sqlmock.NewRows(employeeCols).AddRow(11, 10011,
			time.Date(1953, 9, 2, 0, 0, 0, 0, time.UTC), "Georgi", "Facello", "M",
			time.Date(1986, 6, 26, 0, 0, 0, 0, time.UTC), stamp, stamp))

	rec := s.do(t, http.MethodGet, "/employees?pageId=2&pageSize=10", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["pageId"])
	assert.EqualValues(t, 10, meta["pageSize"])
	assert.EqualValues(t, 25, meta["totalCount"])
	assert.Equal(t, true, meta["hasNext"])

	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	emp := rows[0].(map[string]any)
	assert.Equal(t, "1953-09-02T00:00:00.000Z", emp["birthDate"])
}

func TestListEmployeesWithoutPageHasNoMeta(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(q("FROM employees ORDER BY id ASC LIMIT ? OFFSET ?")).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows(employeeCols))

	rec := s.do(t, http.MethodGet, "/employees", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.NotContains(t, body, "meta")
	assert.Equal(t, []any{}, body["data"])
}

func TestInvalidPageID(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/employees?pageId=x&pageSize=10", "", true)
	assertError(t, rec, http.StatusBadRequest, "Validation failed: pageId must be an integer number")
}

func TestFindByGenderRejectsUnknownValue(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/employees/find-gender?gender=X", "", true)
	assertError(t, rec, http.StatusBadRequest, "Validation failed: gender must be M or F")
}

func TestCreateEmployeeRejectsUnknownProperty(t *testing.T) {
	s := newTestServer(t)
	body := `{"firstName":"A","lastName":"B","gender":"M","birthDate":"1990-01-01","hireDate":"2020-01-01","salary":1}`
	rec := s.do(t, http.MethodPost, "/employees", body, true)
	assertError(t, rec, http.StatusBadRequest, "Validation failed: property salary should not exist")
}

func TestDeleteEmployee(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectExec(q("DELETE FROM employees WHERE id = ?")).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := s.do(t, http.MethodDelete, "/employees/5", "", true)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(q("FROM users WHERE username = ?")).WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin", "h", "admin@example.com", nil, nil, stamp, stamp))

	rec := s.do(t, http.MethodPost, "/auth/register",
		`{"username":"admin","email":"admin@example.com","password":"secret1"}`, false)
	assertError(t, rec, http.StatusConflict, "Username already exists")
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.PasswordHasher{Cost: 4}.Hash("Admin@123")
	require.NoError(t, err)

	s := newTestServer(t)
	s.mock.ExpectQuery(q("FROM users WHERE username = ?")).WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin", hash, "admin@example.com", nil, nil, stamp, stamp))

	rec := s.do(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"nope"}`, false)
	assertError(t, rec, http.StatusUnauthorized, "Username or password is incorrect")
}

func TestLoginReturnsToken(t *testing.T) {
	hash, err := auth.PasswordHasher{Cost: 4}.Hash("Admin@123")
	require.NoError(t, err)

	s := newTestServer(t)
	s.mock.ExpectQuery(q("FROM users WHERE username = ?")).WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin", hash, "admin@example.com", nil, "System Administrator", stamp, stamp))

	rec := s.do(t, http.MethodPost, "/auth/login", `{"username":"admin","password":"Admin@123"}`, false)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	claims, err := s.tokens.Parse(data["accessToken"].(string))
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	user := data["user"].(map[string]any)
	assert.Equal(t, "System Administrator", user["fullName"])
}

func TestUserNeverExposesPasswordHash(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(q("FROM users WHERE id = ?")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin", "$2a$10$secret", "admin@example.com", "+1234567890", nil, stamp, stamp))

	rec := s.do(t, http.MethodGet, "/users/1", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "secret"))
	data := decode(t, rec)["data"].(map[string]any)
	assert.NotContains(t, data, "passwordHash")
	assert.Equal(t, "+1234567890", data["phone"])
	assert.Nil(t, data["fullName"])
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(q("FROM users WHERE id = ?")).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "admin", "h", "admin@example.com", nil, nil, stamp, stamp))

	rec := s.do(t, http.MethodGet, "/auth/profile", "", true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decode(t, rec)["data"].(map[string]any)["username"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/health", "", false)

	rec := s.do(t, http.MethodGet, "/metrics", "", false)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestPanicIsCountedAsServerError(t *testing.T) {
	s := newTestServer(t)
	s.router.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := s.do(t, http.MethodGet, "/boom", "", false)
	assertError(t, rec, http.StatusInternalServerError, "Internal server error")

	rec = s.do(t, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hrms_http_requests_total{method="GET",path="/boom",status="500"} 1`)
}

func TestOversizedPageIsRejected(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/employees?pageId=4611686018427387904&pageSize=4", "", true)
	assertError(t, rec, http.StatusBadRequest, "Validation failed: pageId must not be greater than 1000000")
}
