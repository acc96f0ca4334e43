package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"hrms/internal/domain"
	"hrms/internal/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withTotal(n int64) *pagination.Metadata {
	md := pagination.New()
	md.SetTotalCount(n)
	return md
}

func TestFormatMeta(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		query    string
		md       *pagination.Metadata
		wantMeta *Meta
	}{
		{"has next", http.MethodGet, "pageId=1&pageSize=2", withTotal(5), &Meta{1, 2, 5, true}},
		{"last page", http.MethodGet, "pageId=3&pageSize=2", withTotal(5), &Meta{3, 2, 5, false}},
		{"exact boundary", http.MethodGet, "pageId=2&pageSize=5", withTotal(10), &Meta{2, 5, 10, false}},
		{"product overflows int64", http.MethodGet, "pageId=4611686018427387904&pageSize=4", withTotal(10), &Meta{4611686018427387904, 4, 10, false}},
		{"huge page, huge total", http.MethodGet, "pageId=1000000&pageSize=1000", withTotal(1000000001), &Meta{1000000, 1000, 1000000001, true}},
		{"padded values", http.MethodGet, "pageId=%201&pageSize=2%20", withTotal(5), &Meta{1, 2, 5, true}},
		{"missing pageSize", http.MethodGet, "pageId=1", withTotal(5), nil},
		{"not integer", http.MethodGet, "pageId=x&pageSize=2", withTotal(5), nil},
		{"not GET", http.MethodPost, "pageId=1&pageSize=2", withTotal(5), nil},
		{"no total", http.MethodGet, "pageId=1&pageSize=2", pagination.New(), nil},
		{"no carrier", http.MethodGet, "pageId=1&pageSize=2", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			body := Format(tt.method, q, 200, []int{1}, tt.md)
			assert.Equal(t, 200, body.Status)
			assert.Equal(t, "", body.Message)
			assert.Equal(t, tt.wantMeta, body.Meta)
		})
	}
}

func newEngine(log *zap.Logger, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(Recover(log)))
	r.Use(func(c *gin.Context) {
		ctx := pagination.WithMetadata(c.Request.Context(), pagination.New())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(Envelope(log))
	r.GET("/items", h)
	r.POST("/items", h)
	r.DELETE("/items", h)
	return r
}

func serve(r *gin.Engine, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	var body map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
	}
	return rec, body
}

func TestEnvelopeSuccessWithMeta(t *testing.T) {
	r := newEngine(zap.NewNop(), func(c *gin.Context) {
		pagination.RecordTotal(c.Request.Context(), 5)
		Write(c, http.StatusOK, []string{"a", "b"})
	})

	rec, body := serve(r, http.MethodGet, "/items?pageId=1&pageSize=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(200), body["status"])
	assert.Equal(t, "", body["message"])
	assert.Equal(t, []any{"a", "b"}, body["data"])
	assert.Equal(t, map[string]any{"pageId": 1.0, "pageSize": 2.0, "totalCount": 5.0, "hasNext": true}, body["meta"])
}

func TestEnvelopeOmitsMetaWithoutPaging(t *testing.T) {
	r := newEngine(zap.NewNop(), func(c *gin.Context) {
		Write(c, http.StatusCreated, map[string]int{"id": 1})
	})

	rec, body := serve(r, http.MethodPost, "/items")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(201), body["status"])
	_, hasMeta := body["meta"]
	assert.False(t, hasMeta)
}

func TestEnvelopeNoContent(t *testing.T) {
	r := newEngine(zap.NewNop(), func(c *gin.Context) { NoContent(c) })

	rec, _ := serve(r, http.MethodDelete, "/items")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestHandleErrorClassified(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newEngine(zap.New(core), func(c *gin.Context) {
		_ = c.Error(domain.NewNotFound("Department with ID 9999"))
	})

	rec, body := serve(r, http.MethodGet, "/items")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"status": 404.0, "message": "Department with ID 9999 not found", "data": nil}, body)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Contains(t, logs.All()[0].Message, "GET /items")
}

func TestHandleErrorStatusOverride(t *testing.T) {
	r := newEngine(zap.NewNop(), func(c *gin.Context) {
		_ = c.Error(domain.New(domain.KindConflict, "taken", http.StatusUnprocessableEntity))
	})

	rec, body := serve(r, http.MethodGet, "/items")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 422.0, body["status"])
}

func TestHandleErrorInternalHidesCauseButLogsIt(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newEngine(zap.New(core), func(c *gin.Context) {
		_ = c.Error(domain.NewInternal("Failed to update employee", errors.New("dial tcp 10.0.0.1:3306")))
	})

	rec, body := serve(r, http.MethodGet, "/items")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to update employee", body["message"])
	assert.NotContains(t, rec.Body.String(), "dial tcp")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Contains(t, entry.ContextMap()["trace"], "dial tcp")
}

func TestHandleErrorUnknown(t *testing.T) {
	r := newEngine(zap.NewNop(), func(c *gin.Context) {
		_ = c.Error(errors.New("secret detail"))
	})

	rec, body := serve(r, http.MethodGet, "/items")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"status": 500.0, "message": "Internal server error", "data": nil}, body)
}

func TestPanicBecomesEnvelope(t *testing.T) {
	r := newEngine(zap.NewNop(), func(c *gin.Context) {
		panic("boom")
	})

	rec, body := serve(r, http.MethodGet, "/items")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
}

func TestPanicWithAppError(t *testing.T) {
	r := newEngine(zap.NewNop(), func(c *gin.Context) {
		panic(domain.NewForbidden("nope"))
	})

	rec, body := serve(r, http.MethodGet, "/items")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "nope", body["message"])
}
