package middleware

import (
	"log/slog"
	"net/http"

	appctx "github.com/jsamuelsen11/task-planner/internal/app/context"
	"github.com/jsamuelsen11/task-planner/internal/platform/logging"
)

// AppContext returns middleware that gives each request its own memo, an
// appctx.RequestContext reachable through appctx.FromContext. It is mounted
// innermost so the memo's context is the fully decorated request context.
// When the memo was used, its size is logged at DEBUG once the handler
// returns.
func AppContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			rc := appctx.New(ctx)
			next.ServeHTTP(w, r.WithContext(appctx.WithRequestContext(ctx, rc)))

			if n := rc.Len(); n > 0 {
				logging.FromContext(ctx).DebugContext(ctx, "request memo released",
					slog.Int("entries", n),
				)
			}
		})
	}
}
