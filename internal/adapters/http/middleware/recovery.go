package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
)

// errPanic is all a client learns about a recovered panic.
var errPanic = errors.New("internal server error")

// Recovery returns the outermost middleware. It turns a handler panic into an
// ERROR log with the stack and, unless the response already started, a 500
// problem of kind "internal". http.ErrAbortHandler is passed on to net/http,
// which aborts the connection quietly.
//
// The request ID comes from the X-Request-ID response header because
// RequestID runs inside Recovery.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newStatusRecorder(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", rw.Header().Get(headerRequestID)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(v)),
					slog.Bool("response_started", rw.committed()),
					slog.String("stack", string(debug.Stack())),
				)
				if !rw.committed() {
					dto.WriteErrorResponse(rw, r, errPanic)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
