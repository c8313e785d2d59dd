package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/middleware"
)

// testLogger is a plain text handler. logging.New would run the masq
// redaction over the stack trace.
func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		handler     http.HandlerFunc
		wantStatus  int
		wantProblem bool
		wantBody    string
	}{
		{
			name: "no panic",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("Board: sprint1"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "Board: sprint1",
		},
		{
			name:        "string panic",
			handler:     func(http.ResponseWriter, *http.Request) { panic("nil board snapshot") },
			wantStatus:  http.StatusInternalServerError,
			wantProblem: true,
		},
		{
			name:        "error panic",
			handler:     func(http.ResponseWriter, *http.Request) { panic(errors.New("tx already closed")) },
			wantStatus:  http.StatusInternalServerError,
			wantProblem: true,
		},
		{
			name:        "non-string panic",
			handler:     func(http.ResponseWriter, *http.Request) { panic(42) },
			wantStatus:  http.StatusInternalServerError,
			wantProblem: true,
		},
		{
			name: "panic after response started",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte("partial"))
				panic("late panic")
			},
			wantStatus: http.StatusAccepted,
			wantBody:   "partial",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			middleware.Recovery(discardLogger())(tt.handler).
				ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/boards/b-1", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !tt.wantProblem {
				if rec.Body.String() != tt.wantBody {
					t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
				}
				return
			}

			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}
			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response body: %v", err)
			}
			if body["kind"] != "internal" || body["title"] != "Internal Server Error" {
				t.Errorf("problem = %v, want kind internal", body)
			}
			if strings.Contains(rec.Body.String(), "tx already closed") {
				t.Error("panic value leaked to the client")
			}
		})
	}
}

func TestRecovery_LogEntry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := chi.Chain(
		middleware.Recovery(testLogger(&buf)),
		middleware.RequestID(),
	).HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("test panic value")
	})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/tasks/t-1/status", http.NoBody)
	req.Header.Set("X-Request-ID", "req-77")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{
		"panic recovered",
		"request_id=req-77",
		"method=PUT",
		"path=/api/v1/tasks/t-1/status",
		`panic="test panic value"`,
		"response_started=false",
		"goroutine",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	t.Parallel()

	handler := middleware.Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", v)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", http.NoBody))
	t.Error("ServeHTTP returned normally, want re-panic")
}
