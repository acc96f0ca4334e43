package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordHTTPRequest(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("GET", "/employees/:id", 404, 3*time.Millisecond)
	m.RecordHTTPRequest("GET", "/employees/:id", 404, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/employees/:id", "404")))
}

func TestHandlerExposesNotifyStats(t *testing.T) {
	m := New()
	m.RegisterNotifyStats(func() int64 { return 3 }, func() int64 { return 1 })

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "hrms_notify_sent_total 3")
	assert.Contains(t, body, "hrms_notify_dropped_total 1")
}
