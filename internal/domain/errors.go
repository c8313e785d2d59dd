package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking. Each maps to one error kind of
// the task planner's taxonomy.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrPrecondition  = errors.New("precondition failed")
	ErrLimitExceeded = errors.New("limit exceeded")
	ErrUnavailable   = errors.New("unavailable")
)

// Reason is the machine-readable cause of a rejected operation.
type Reason string

const (
	ReasonMissingField          Reason = "missing_field"
	ReasonTooLong               Reason = "too_long"
	ReasonDuplicateName         Reason = "duplicate_name"
	ReasonDuplicateNameInTeam   Reason = "duplicate_name_in_team"
	ReasonDuplicateTitleInBoard Reason = "duplicate_title_in_board"
	ReasonNameImmutable         Reason = "name_immutable"
	ReasonNotFound              Reason = "not_found"
	ReasonAdminNotFound         Reason = "admin_not_found"
	ReasonTeamNotFound          Reason = "team_not_found"
	ReasonBoardNotFound         Reason = "board_not_found"
	ReasonUserNotFound          Reason = "user_not_found"
	ReasonBoardClosed           Reason = "board_closed"
	ReasonIncompleteTasks       Reason = "incomplete_tasks"
	ReasonTooMany               Reason = "too_many"
	ReasonInvalidUserID         Reason = "invalid_user_id"
	ReasonMemberCapExceeded     Reason = "member_cap_exceeded"
	ReasonInvalidStatus         Reason = "invalid_status"
	ReasonInvalidFormat         Reason = "invalid_format"
)

// String implements fmt.Stringer.
func (r Reason) String() string {
	return string(r)
}

// Validation messages shared by the entity packages.
const (
	MsgRequired = "is required"
)

// MsgTooLong formats the message for a field exceeding its maximum length.
func MsgTooLong(limit int) string {
	return fmt.Sprintf("must be at most %d characters", limit)
}

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Reason Reason
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Error is a business-rule rejection that is not a field validation failure:
// a missing referenced entity, a uniqueness conflict, an illegal state
// transition, or an exceeded limit. Kind is one of the sentinel errors.
type Error struct {
	Kind   error
	Reason Reason
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Detail, e.Kind.Error())
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound returns an *Error of kind ErrNotFound.
func NotFound(reason Reason, format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Conflict returns an *Error of kind ErrConflict.
func Conflict(reason Reason, format string, args ...any) error {
	return &Error{Kind: ErrConflict, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// PreconditionFailed returns an *Error of kind ErrPrecondition.
func PreconditionFailed(reason Reason, format string, args ...any) error {
	return &Error{Kind: ErrPrecondition, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// LimitExceeded returns an *Error of kind ErrLimitExceeded.
func LimitExceeded(reason Reason, format string, args ...any) error {
	return &Error{Kind: ErrLimitExceeded, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Invalid returns a *ValidationError for a single field.
func Invalid(reason Reason, field, msg string) error {
	return &ValidationError{Reason: reason, Fields: map[string]string{field: msg}}
}

// ReasonOf extracts the machine-readable reason from err. Errors that carry
// no reason but wrap ErrNotFound report ReasonNotFound; anything else
// reports the empty reason.
func ReasonOf(err error) Reason {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Reason
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}
	if errors.Is(err, ErrNotFound) {
		return ReasonNotFound
	}
	return ""
}

// Retag replaces the reason of a not-found error so callers can report which
// reference failed (e.g. a missing admin rather than a missing user).
// Errors of any other kind are returned unchanged.
func Retag(err error, reason Reason) error {
	var derr *Error
	if errors.As(err, &derr) && errors.Is(derr.Kind, ErrNotFound) {
		return &Error{Kind: ErrNotFound, Reason: reason, Detail: derr.Detail}
	}
	return err
}
