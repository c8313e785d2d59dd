package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// Error kinds reported in the "kind" member of a problem response.
const (
	KindValidation    = "validation_failed"
	KindNotFound      = "not_found"
	KindConflict      = "conflict"
	KindPrecondition  = "precondition_failed"
	KindLimitExceeded = "limit_exceeded"
	KindUnavailable   = "unavailable"
	KindInternal      = "internal"
)

const internalErrorDetail = "an unexpected error occurred"

// ErrorResponse represents an RFC 9457 Problem Details response. Kind and
// Reason are extension members carrying the machine-readable error class and
// rule that rejected the request.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Kind     string        `json:"kind"`
	Reason   string        `json:"reason,omitempty"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single field-level validation error within
// an ErrorResponse.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// NewErrorResponse creates an RFC 9457 ErrorResponse from a domain error.
// The request is used to populate the instance field with the request URI.
// Errors outside the domain taxonomy are reported as internal without their
// message.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	kind, status := classify(err)

	resp := ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Kind:     kind,
		Reason:   domain.ReasonOf(err).String(),
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}
	if kind == KindInternal {
		resp.Detail = internalErrorDetail
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Errors = validationFieldsToDetails(verr.Fields)
	}

	return resp
}

// WriteErrorResponse writes an RFC 9457 error response for the given domain
// error. It sets the Content-Type to application/problem+json, writes the
// appropriate HTTP status code, and marshals the error body as JSON.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	writeProblem(w, r, NewErrorResponse(r, err))
}

// WriteTimeoutResponse writes a 504 problem response for a request that
// exceeded its deadline before the handler produced a response.
func WriteTimeoutResponse(w http.ResponseWriter, r *http.Request) {
	writeProblem(w, r, ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(http.StatusGatewayTimeout),
		Status:   http.StatusGatewayTimeout,
		Kind:     KindUnavailable,
		Detail:   "request did not complete before its deadline",
		Instance: r.RequestURI,
	})
}

func writeProblem(w http.ResponseWriter, r *http.Request, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(resp.Status)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		slog.ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", encErr),
		)
	}
}

// classify maps domain sentinel errors to an error kind and HTTP status code.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return KindValidation, http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return KindNotFound, http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return KindConflict, http.StatusConflict
	case errors.Is(err, domain.ErrPrecondition):
		return KindPrecondition, http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrLimitExceeded):
		return KindLimitExceeded, http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnavailable):
		return KindUnavailable, http.StatusBadGateway
	default:
		return KindInternal, http.StatusInternalServerError
	}
}

// validationFieldsToDetails converts domain validation fields to sorted
// ErrorDetail entries.
func validationFieldsToDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{
			Location: "body." + field,
			Message:  msg,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].Location < details[j].Location
	})
	return details
}
