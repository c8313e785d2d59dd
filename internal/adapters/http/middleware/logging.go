package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jsamuelsen11/task-planner/internal/platform/logging"
)

const redacted = "[REDACTED]"

// Logging returns middleware that tags the request context with request_id
// and correlation_id and writes one access log line per request.
//
// The IDs are stored with logging.WithAttrs, so every logger built by
// logging.New adds them to records logged with the request context; logger
// itself is also stored for logging.FromContext. The access line is logged
// at INFO for 2xx and 3xx, WARN for 4xx and ERROR for 5xx, and names the
// matched chi route next to the raw path. Request headers are logged at
// DEBUG with credentials redacted.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			ctx = logging.WithAttrs(ctx,
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, logger)

			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.DebugContext(ctx, "request received",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					headerGroup(r.Header),
				)
			}

			rw := newStatusRecorder(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			route := routePattern(r)
			if route == "" {
				route = unmatchedRoute
			}
			status := rw.status()
			logger.LogAttrs(ctx, accessLevel(status), "request completed",
				slog.String("method", r.Method),
				slog.String("route", route),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", rw.bytes),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

func accessLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// headerGroup renders h as a "headers" group. Credential headers are
// replaced and multi-value headers are joined with a comma.
func headerGroup(h http.Header) slog.Attr {
	attrs := make([]any, 0, len(h))
	for name, vals := range h {
		value := strings.Join(vals, ",")
		if logging.SensitiveHeader(name) {
			value = redacted
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return slog.Group("headers", attrs...)
}
