package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrms/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type sampleReq struct {
	DeptNo   string  `json:"deptNo" binding:"required,len=4"`
	DeptName string  `json:"deptName" binding:"required,min=1,max=40"`
	Gender   *string `json:"gender" binding:"omitempty,oneof=M F"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Birth    string  `json:"birthDate" binding:"omitempty,datetime=2006-01-02"`
}

func jsonContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func assertValidation(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, "Validation failed: "+msg, err.Error())
}

func TestDecodeJSONTrimsAndValidates(t *testing.T) {
	var req sampleReq
	err := DecodeJSON(jsonContext(`{"deptNo":" d010 ","deptName":"  Platform ","gender":" F "}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "d010", req.DeptNo)
	assert.Equal(t, "Platform", req.DeptName)
	assert.Equal(t, "F", *req.Gender)
}

func TestDecodeJSONMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"unknown field", `{"deptNo":"d010","deptName":"x","extra":1}`, "property extra should not exist"},
		{"required after trim", `{"deptNo":"d010","deptName":"   "}`, "deptName should not be empty"},
		{"len", `{"deptNo":"d1","deptName":"x"}`, "deptNo must be exactly 4 characters"},
		{"max", `{"deptNo":"d010","deptName":"` + strings.Repeat("a", 41) + `"}`, "deptName must be shorter than or equal to 40 characters"},
		{"oneof", `{"deptNo":"d010","deptName":"x","gender":"X"}`, "gender must be M or F"},
		{"email", `{"deptNo":"d010","deptName":"x","email":"nope"}`, "email must be an email"},
		{"date", `{"deptNo":"d010","deptName":"x","birthDate":"1990/01/01"}`, "birthDate must be a valid date (YYYY-MM-DD)"},
		{"type", `{"deptNo":4,"deptName":"x"}`, "deptNo must be a string"},
		{"syntax", `{"deptNo":`, "request body is not valid JSON"},
		{"empty body", ``, "deptNo should not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req sampleReq
			assertValidation(t, DecodeJSON(jsonContext(tt.body), &req), tt.msg)
		})
	}
}

func TestDecodeJSONRejectsOversizedBody(t *testing.T) {
	body := `{"deptNo":"d010","deptName":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	var req sampleReq
	err := DecodeJSON(jsonContext(body), &req)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.StatusCode)
	assert.Equal(t, "Request body is too large", appErr.Message)
}

func TestParseID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParseID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, err = ParseID(c, "id")
	assertValidation(t, err, "Numeric string is expected")
}

func TestParsePage(t *testing.T) {
	pageCtx := func(query string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		return c
	}

	page, err := ParsePage(pageCtx("pageId=2&pageSize=10"))
	require.NoError(t, err)
	assert.True(t, page.Active())
	assert.Equal(t, 10, page.Window().Offset)

	page, err = ParsePage(pageCtx(""))
	require.NoError(t, err)
	assert.False(t, page.Active())

	_, err = ParsePage(pageCtx("pageId=abc&pageSize=1"))
	assertValidation(t, err, "pageId must be an integer number")

	_, err = ParsePage(pageCtx("pageId=1&pageSize=0"))
	assertValidation(t, err, "pageSize must not be less than 1")

	_, err = ParsePage(pageCtx("pageId=1000001&pageSize=10"))
	assertValidation(t, err, "pageId must not be greater than 1000000")

	_, err = ParsePage(pageCtx("pageId=1&pageSize=1001"))
	assertValidation(t, err, "pageSize must not be greater than 1000")

	page, err = ParsePage(pageCtx("pageId=%201&pageSize=2"))
	require.NoError(t, err)
	assert.Equal(t, 1, *page.PageID)
}

type genderQuery struct {
	Gender string `form:"gender" binding:"required,oneof=M F"`
}

func TestBindQuery(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?gender=Q", nil)

	var q genderQuery
	assertValidation(t, BindQuery(c, &q), "gender must be M or F")
}
