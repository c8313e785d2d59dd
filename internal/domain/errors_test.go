package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFieldCheck_Err(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		build      func(c *FieldCheck)
		wantReason Reason
		wantFields []string
	}{
		{
			name:  "no failures",
			build: func(c *FieldCheck) { c.Required("name", "alice") },
		},
		{
			name:       "blank value is missing",
			build:      func(c *FieldCheck) { c.Required("name", "   ") },
			wantReason: ReasonMissingField,
			wantFields: []string{"name"},
		},
		{
			name: "missing takes precedence over too long",
			build: func(c *FieldCheck) {
				c.Required("name", "")
				c.MaxLength("description", strings.Repeat("x", 200), 128)
			},
			wantReason: ReasonMissingField,
			wantFields: []string{"name"},
		},
		{
			name:       "length counted in code points",
			build:      func(c *FieldCheck) { c.MaxLength("name", strings.Repeat("é", 64), 64) },
			wantReason: "",
		},
		{
			name:       "one past the limit",
			build:      func(c *FieldCheck) { c.MaxLength("name", strings.Repeat("a", 65), 64) },
			wantReason: ReasonTooLong,
			wantFields: []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var c FieldCheck
			tt.build(&c)
			err := c.Err()

			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("Err() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("errors.Is(err, ErrValidation) = false, got %v", err)
			}
			if got := ReasonOf(err); got != tt.wantReason {
				t.Errorf("ReasonOf() = %q, want %q", got, tt.wantReason)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
			}
			for _, f := range tt.wantFields {
				if _, ok := verr.Fields[f]; !ok {
					t.Errorf("Fields missing key %q, got %v", f, verr.Fields)
				}
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Errorf("len(Fields) = %d, want %d", len(verr.Fields), len(tt.wantFields))
			}
		})
	}
}

func TestError_KindsAndReasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantKind   error
		wantReason Reason
	}{
		{"not found", NotFound(ReasonNotFound, "user %s", "u1"), ErrNotFound, ReasonNotFound},
		{"conflict", Conflict(ReasonDuplicateName, "name taken"), ErrConflict, ReasonDuplicateName},
		{"precondition", PreconditionFailed(ReasonBoardClosed, "closed"), ErrPrecondition, ReasonBoardClosed},
		{"limit", LimitExceeded(ReasonTooMany, "too many"), ErrLimitExceeded, ReasonTooMany},
		{"invalid", Invalid(ReasonInvalidStatus, "status", "bad"), ErrValidation, ReasonInvalidStatus},
		{"wrapped", fmt.Errorf("outer: %w", Conflict(ReasonDuplicateName, "x")), ErrConflict, ReasonDuplicateName},
		{"bare sentinel", fmt.Errorf("lookup: %w", ErrNotFound), ErrNotFound, ReasonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.wantKind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantKind)
			}
			if got := ReasonOf(tt.err); got != tt.wantReason {
				t.Errorf("ReasonOf() = %q, want %q", got, tt.wantReason)
			}
		})
	}
}

func TestRetag(t *testing.T) {
	t.Parallel()

	err := Retag(NotFound(ReasonNotFound, "user u1"), ReasonAdminNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false, got %v", err)
	}
	if got := ReasonOf(err); got != ReasonAdminNotFound {
		t.Errorf("ReasonOf() = %q, want %q", got, ReasonAdminNotFound)
	}

	conflict := Conflict(ReasonDuplicateName, "x")
	if got := Retag(conflict, ReasonAdminNotFound); got != conflict {
		t.Errorf("Retag(conflict) = %v, want unchanged", got)
	}
}

func TestValidationError_ErrorIsSorted(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Fields: map[string]string{"b": "two", "a": "one"}}
	want := "validation failed: a: one; b: two"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
