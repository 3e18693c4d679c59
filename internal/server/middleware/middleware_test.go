package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/backend-api/pkg/logging"
)

// TestChain tests middleware composition.
func TestChain(t *testing.T) {
	tests := []struct {
		name              string
		numMiddleware     int
		expectedCallOrder []string
	}{
		{"no middleware", 0, []string{"handler"}},
		{"single middleware", 1, []string{"m1", "handler"}},
		{"three middleware", 3, []string{"m1", "m2", "m3", "handler"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var callOrder []string

			middlewares := make([]func(http.Handler) http.Handler, tt.numMiddleware)
			for i := 0; i < tt.numMiddleware; i++ {
				name := "m" + string(rune('1'+i))
				middlewares[i] = func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
						callOrder = append(callOrder, name)
						next.ServeHTTP(w, r)
					})
				}
			}

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				callOrder = append(callOrder, "handler")
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			Chain(middlewares...)(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedCallOrder, callOrder)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

// TestLogger tests request logging middleware.
func TestLogger(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
		writeBody     bool
	}{
		{"GET root", http.MethodGet, "/", http.StatusOK, true},
		{"implicit 200 from Write", http.MethodGet, "/", 0, true},
		{"unknown path", http.MethodGet, "/missing", http.StatusNotFound, false},
		{"wrong method", http.MethodDelete, "/", http.StatusMethodNotAllowed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).With().Timestamp().Logger()

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.handlerStatus != 0 {
					w.WriteHeader(tt.handlerStatus)
				}
				if tt.writeBody {
					_, _ = w.Write([]byte("ok"))
				}
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			req.Header.Set("User-Agent", "test-agent")
			w := httptest.NewRecorder()

			Logger(&logger)(handler).ServeHTTP(w, req)

			expectedStatus := tt.handlerStatus
			if expectedStatus == 0 {
				expectedStatus = http.StatusOK
			}
			assert.Equal(t, expectedStatus, w.Code)

			var logEntry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry), buf.String())
			assert.Equal(t, tt.method, logEntry["method"])
			assert.Equal(t, tt.path, logEntry["path"])
			assert.Equal(t, "192.168.1.1:12345", logEntry["remote_addr"])
			assert.Equal(t, "test-agent", logEntry["user_agent"])
			assert.Equal(t, "HTTP request", logEntry["message"])
			assert.EqualValues(t, expectedStatus, logEntry["status"])
			assert.Contains(t, logEntry, "duration_ms")
		})
	}
}

// TestLogger_ContextLogger verifies handlers see a request-scoped logger.
func TestLogger_ContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Debug().Msg("inside handler")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "curl/8.0")
	Logger(tl.Logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	lines := tl.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "inside handler")
	assert.Contains(t, lines[0], `"user_agent":"curl/8.0"`)
	assert.Contains(t, lines[1], "HTTP request")
}

// TestLogger_Duration verifies duration logging.
func TestLogger_Duration(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	Logger(&logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	durationMs, ok := logEntry["duration_ms"].(float64)
	require.True(t, ok, "duration_ms field not found or wrong type")
	assert.GreaterOrEqual(t, durationMs, 50.0)
}

// TestRecovery tests panic recovery middleware.
func TestRecovery(t *testing.T) {
	tests := []struct {
		name         string
		panicValue   interface{}
		shouldPanic  bool
		expectStatus int
	}{
		{name: "no panic", expectStatus: http.StatusOK},
		{name: "panic with string", shouldPanic: true, panicValue: "something went wrong", expectStatus: http.StatusInternalServerError},
		{name: "panic with nil", shouldPanic: true, panicValue: nil, expectStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.shouldPanic {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.7:4242"
			w := httptest.NewRecorder()
			assert.NotPanics(t, func() {
				Recovery(&logger)(handler).ServeHTTP(w, req)
			})

			assert.Equal(t, tt.expectStatus, w.Code)
			if tt.shouldPanic {
				var logEntry map[string]interface{}
				require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry), buf.String())
				assert.Equal(t, "Panic recovered", logEntry["message"])
				assert.Equal(t, "error", logEntry["level"])
				assert.Equal(t, http.MethodGet, logEntry["method"])
				assert.Equal(t, "/", logEntry["path"])
				assert.Equal(t, "10.0.0.7:4242", logEntry["remote_addr"])
				assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

// TestRecovery_ContextLogger verifies handlers behind Recovery alone still
// get a request-scoped logger.
func TestRecovery_ContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Debug().Msg("inside handler")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/things", nil)
	req.RemoteAddr = "10.0.0.7:4242"
	Recovery(tl.Logger)(handler).ServeHTTP(httptest.NewRecorder(), req)

	lines := tl.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "inside handler")
	assert.Contains(t, lines[0], `"method":"POST"`)
	assert.Contains(t, lines[0], `"remote_addr":"10.0.0.7:4242"`)
}

// TestRecovery_AfterHeadersWritten keeps the original status.
func TestRecovery_AfterHeadersWritten(t *testing.T) {
	logger := zerolog.Nop()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late failure")
	})

	w := httptest.NewRecorder()
	Recovery(&logger)(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), "INTERNAL_ERROR"))
}

// TestRecovery_AbortHandler re-raises http.ErrAbortHandler.
func TestRecovery_AbortHandler(t *testing.T) {
	logger := zerolog.Nop()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		Recovery(&logger)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

type recordingObserver struct {
	mu       sync.Mutex
	methods  []string
	statuses []int
}

func (o *recordingObserver) Observe(method string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.methods = append(o.methods, method)
	o.statuses = append(o.statuses, status)
}

// TestMetrics tests that each request is observed once with its final status.
func TestMetrics(t *testing.T) {
	obs := &recordingObserver{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hi"))
	})
	handler := Metrics(obs)(mux)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodGet, "/nope"},
		{http.MethodPut, "/"},
	} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.path, nil))
	}

	assert.Equal(t, []string{"GET", "GET", "PUT"}, obs.methods)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound, http.StatusMethodNotAllowed}, obs.statuses)
}

// TestWrap_Reuse ensures nested middleware share one wrapper.
func TestWrap_Reuse(t *testing.T) {
	w := httptest.NewRecorder()
	first := wrap(w)
	assert.Same(t, first, wrap(first))
	assert.Same(t, w, first.Unwrap())
}
