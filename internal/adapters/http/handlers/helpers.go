// Package handlers adapts HTTP requests to the planner's service ports.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// maxBodyBytes caps JSON request bodies at 1 MiB.
const maxBodyBytes = 1 << 20

// pathParam returns the named chi URL parameter. A blank value is answered
// with 400 missing_field and ok=false.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (value string, ok bool) {
	value = strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		dto.WriteErrorResponse(w, r, domain.Invalid(domain.ReasonMissingField, name, domain.MsgRequired))
	}
	return value, value != ""
}

func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", slog.Any("error", err))
	}
}

// request is a decoded body that checks its own fields.
type request interface {
	Validate() error
}

// bind decodes the JSON body into dst and validates it. Unreadable JSON is a
// 400 missing_field on "body"; validation errors map like any domain error.
// On failure the response is written and bind returns false.
func bind[T request](w http.ResponseWriter, r *http.Request, dst T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		err = domain.Invalid(domain.ReasonMissingField, "body", "invalid JSON")
	} else {
		err = dst.Validate()
	}
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}
