package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/task-planner/internal/platform/httpclient"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"

	// maxInboundIDLength bounds IDs accepted from clients.
	maxInboundIDLength = 128
)

type (
	requestIDKey     struct{}
	correlationIDKey struct{}
)

// WithRequestID stores id as the request ID, for this package's readers and
// for outbound formatter calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return httpclient.WithRequestID(context.WithValue(ctx, requestIDKey{}, id), id)
}

// RequestIDFromContext returns the request ID, or "" when none is stored.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithCorrelationID stores id as the correlation ID, for this package's
// readers and for outbound formatter calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return httpclient.WithCorrelationID(context.WithValue(ctx, correlationIDKey{}, id), id)
}

// CorrelationIDFromContext returns the correlation ID, or "" when none is
// stored.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// RequestID tags each request with an X-Request-ID. A well-formed inbound
// header is kept, anything else is replaced by a UUID v4. The ID is echoed
// on the response.
func RequestID() func(http.Handler) http.Handler {
	return identify(headerRequestID, WithRequestID, func(context.Context) string { return "" })
}

// CorrelationID tags each request with an X-Correlation-ID. A well-formed
// inbound header is kept so a chain of services shares one ID. Otherwise
// the request ID is reused, or a UUID v4 when RequestID did not run.
func CorrelationID() func(http.Handler) http.Handler {
	return identify(headerCorrelationID, WithCorrelationID, RequestIDFromContext)
}

// identify builds the middleware for one ID header. fallback supplies the ID
// when the inbound header is unusable; "" means generate one.
func identify(
	header string,
	store func(context.Context, string) context.Context,
	fallback func(context.Context) string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := r.Header.Get(header)
			if !validInboundID(id) {
				id = fallback(ctx)
			}
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(header, id)
			next.ServeHTTP(w, r.WithContext(store(ctx, id)))
		})
	}
}

// validInboundID accepts non-empty printable ASCII without spaces, up to
// maxInboundIDLength bytes.
func validInboundID(id string) bool {
	if id == "" || len(id) > maxInboundIDLength {
		return false
	}
	for i := range len(id) {
		if c := id[i]; c <= ' ' || c > '~' {
			return false
		}
	}
	return true
}
