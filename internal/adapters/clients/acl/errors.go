// Package acl is the anti-corruption layer in front of the remote board
// formatter. Wire types and their translation live in acl/render; this
// package owns the request lifecycle and maps formatter failures onto domain
// errors.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// maxProblemBytes bounds how much of an error body is read.
const maxProblemBytes = 1 << 20

// problem is the subset of an RFC 9457 problem+json body the formatter sends.
type problem struct {
	Detail string `json:"detail"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

// readProblem decodes resp's body when it is problem+json. Anything else,
// including a malformed body, yields the zero problem.
func readProblem(resp *http.Response) problem {
	var p problem
	if resp.Body == nil {
		return p
	}
	if mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mt != "application/problem+json" {
		return p
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProblemBytes)).Decode(&p); err != nil {
		return problem{}
	}
	return p
}

// formatRejected reports whether status means the formatter refused the
// request itself rather than failed to serve it.
func formatRejected(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
		return true
	default:
		return false
	}
}

// TranslateHTTPError turns a formatter error response into a domain error.
// A refused request (400, 415, 422) is a validation error with reason
// invalid_format, carrying the problem's field errors when it lists any.
// Every other status wraps domain.ErrUnavailable.
func TranslateHTTPError(resp *http.Response) error {
	p := readProblem(resp)

	if formatRejected(resp.StatusCode) {
		if len(p.Errors) == 0 {
			return domain.Invalid(domain.ReasonInvalidFormat, "format", p.describe(resp.StatusCode))
		}
		fields := make(map[string]string, len(p.Errors))
		for _, e := range p.Errors {
			fields[strings.TrimPrefix(e.Location, "body.")] = e.Message
		}
		return &domain.ValidationError{Reason: domain.ReasonInvalidFormat, Fields: fields}
	}

	return fmt.Errorf("formatter responded %d %s: %w", resp.StatusCode, p.describe(resp.StatusCode), domain.ErrUnavailable)
}

// describe is the problem's detail, or the status text when it has none.
func (p problem) describe(status int) string {
	if p.Detail != "" {
		return p.Detail
	}
	return http.StatusText(status)
}
