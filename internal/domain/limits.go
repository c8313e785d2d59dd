package domain

import (
	"strings"
	"unicode/utf8"
)

// Field and collection limits enforced on every write path.
const (
	MaxNameLength               = 64
	MaxDescriptionLength        = 128
	MaxDisplayNameLength        = 64
	MaxUpdatedDisplayNameLength = 128
	MaxTeamMembers              = 50
	MaxBatchSize                = 50
)

// FieldCheck accumulates required-field and length failures for one entity.
// Missing fields take precedence: when any required field is absent the
// resulting error reports ReasonMissingField and length failures are not
// reported.
type FieldCheck struct {
	missing map[string]string
	tooLong map[string]string
}

// Required records field as missing when value is empty after trimming.
func (c *FieldCheck) Required(field, value string) {
	if strings.TrimSpace(value) != "" {
		return
	}
	if c.missing == nil {
		c.missing = make(map[string]string)
	}
	c.missing[field] = MsgRequired
}

// MaxLength records field as too long when value exceeds limit code points.
func (c *FieldCheck) MaxLength(field, value string, limit int) {
	if utf8.RuneCountInString(value) <= limit {
		return
	}
	if c.tooLong == nil {
		c.tooLong = make(map[string]string)
	}
	c.tooLong[field] = MsgTooLong(limit)
}

// Err returns the accumulated *ValidationError, or nil.
func (c *FieldCheck) Err() error {
	if len(c.missing) > 0 {
		return &ValidationError{Reason: ReasonMissingField, Fields: c.missing}
	}
	if len(c.tooLong) > 0 {
		return &ValidationError{Reason: ReasonTooLong, Fields: c.tooLong}
	}
	return nil
}
