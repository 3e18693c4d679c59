package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New("test")

	m.Observe(http.MethodGet, http.StatusOK, 5*time.Millisecond)
	m.Observe(http.MethodGet, http.StatusOK, 7*time.Millisecond)
	m.Observe(http.MethodPost, http.StatusMethodNotAllowed, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "405")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.info.WithLabelValues("test")))
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		a := New("a")
		b := New("b")
		assert.NotSame(t, a.Registry(), b.Registry())
	})
}

func TestHandler(t *testing.T) {
	m := New("v1.2.3")
	m.Observe(http.MethodGet, http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `backend_api_http_requests_total{code="200",method="GET"} 1`), body)
	assert.Contains(t, body, `backend_api_info{version="v1.2.3"} 1`)
	assert.Contains(t, body, "backend_api_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}

func TestObserve_UnknownMethodsShareOneSeries(t *testing.T) {
	m := New("test")

	for i := 0; i < 500; i++ {
		m.Observe("X"+strconv.Itoa(i), http.StatusMethodNotAllowed, time.Millisecond)
	}
	m.Observe("get", http.StatusMethodNotAllowed, time.Millisecond)
	m.Observe(http.MethodGet, http.StatusOK, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.requests))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
	assert.Equal(t, 501.0, testutil.ToFloat64(m.requests.WithLabelValues("other", "405")))
}

func TestMethodLabel(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{http.MethodGet, "GET"},
		{http.MethodHead, "HEAD"},
		{http.MethodOptions, "OPTIONS"},
		{http.MethodTrace, "TRACE"},
		{"PROPFIND", "other"},
		{"get", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, methodLabel(tt.method))
		})
	}
}
