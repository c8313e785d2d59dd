package handlers

import (
	"net/http"
	"slices"

	"github.com/jsamuelsen11/task-planner/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusDegraded = "degraded"
	statusNotReady = "not_ready"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry   ports.HealthRegistry
	degradable []string
}

// NewHealthHandler creates a HealthHandler over registry. Failures of the
// checks named in degradable leave the service ready but degraded: board
// CRUD keeps working without them, only export does not.
func NewHealthHandler(registry ports.HealthRegistry, degradable ...string) *HealthHandler {
	return &HealthHandler{registry: registry, degradable: degradable}
}

// Liveness handles GET /health/live. Always returns 200 OK.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, map[string]string{"status": statusOK})
}

// Readiness handles GET /health/ready.
//
//	all checks pass              200 ready
//	only degradable checks fail  200 degraded
//	any other check fails        503 not_ready
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	results := h.registry.CheckAll(r.Context())

	checks := make(map[string]string, len(results))
	var critical, degraded bool
	for name, err := range results {
		if err == nil {
			checks[name] = statusOK
			continue
		}
		checks[name] = err.Error()
		if slices.Contains(h.degradable, name) {
			degraded = true
		} else {
			critical = true
		}
	}

	status, code := statusReady, http.StatusOK
	switch {
	case critical:
		status, code = statusNotReady, http.StatusServiceUnavailable
	case degraded:
		status = statusDegraded
	}

	respond(w, r, code, map[string]any{
		"status": status,
		"checks": checks,
	})
}
