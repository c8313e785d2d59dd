package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/middleware"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		timeout    time.Duration
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
		wantHeader http.Header
	}{
		{
			name:    "completes in time",
			timeout: time.Second,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Location", "/api/v1/boards/b-9")
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"b-9"}`))
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":"b-9"}`,
			wantHeader: http.Header{"Location": {"/api/v1/boards/b-9"}},
		},
		{
			name:    "implicit 200",
			timeout: time.Second,
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("exported"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "exported",
		},
		{
			name:    "deadline exceeded",
			timeout: 30 * time.Millisecond,
			handler: func(_ http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
			},
			wantStatus: http.StatusGatewayTimeout,
			wantHeader: http.Header{"Content-Type": {"application/problem+json"}},
		},
		{
			name:    "partial output discarded",
			timeout: 30 * time.Millisecond,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Partial", "yes")
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte("partial"))
				<-r.Context().Done()
			},
			wantStatus: http.StatusGatewayTimeout,
			wantHeader: http.Header{"Content-Type": {"application/problem+json"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			middleware.Timeout(tt.timeout)(tt.handler).
				ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/boards", http.NoBody))

			assert.Equal(t, tt.wantStatus, rec.Code)
			for name := range tt.wantHeader {
				assert.Equal(t, tt.wantHeader.Get(name), rec.Header().Get(name), name)
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			assert.NotContains(t, rec.Body.String(), "partial")
			assert.Empty(t, rec.Header().Get("X-Partial"))
		})
	}
}

func TestTimeout_SetsContextDeadline(t *testing.T) {
	t.Parallel()

	var remaining time.Duration
	handler := middleware.Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		if deadline, ok := r.Context().Deadline(); ok {
			remaining = time.Until(deadline)
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, time.Second)
}

func TestTimeout_PanicReachesRecovery(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger())(
		middleware.Timeout(time.Second)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("store exploded")
		})),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boards/b-1", http.NoBody))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestTimeout_LogsDeadline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logging(logger)(
		middleware.Timeout(20 * time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})),
	)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/boards/b-1/export", http.NoBody))

	out := buf.String()
	if !strings.Contains(out, "request deadline exceeded") || !strings.Contains(out, "timeout=20ms") {
		t.Errorf("log output missing deadline line: %s", out)
	}
	if !strings.Contains(out, "status=504") {
		t.Errorf("access line missing 504: %s", out)
	}
}
