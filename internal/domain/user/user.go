// Package user defines the User entity and its field rules.
package user

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// User is a person who can administer teams, belong to teams, and be
// assigned tasks. Name is globally unique and never changes after creation.
type User struct {
	ID          string
	Name        string
	DisplayName string
	CreatedAt   time.Time
}

// Validate checks the creation rules for a User.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (u *User) Validate() error {
	var check domain.FieldCheck

	check.Required("name", u.Name)
	check.Required("display_name", u.DisplayName)
	check.MaxLength("name", u.Name, domain.MaxNameLength)
	check.MaxLength("display_name", u.DisplayName, domain.MaxDisplayNameLength)

	return check.Err()
}

// Update describes a change to an existing user. Name, when non-empty, must
// match the stored name; an empty DisplayName keeps the current value.
type Update struct {
	Name        string
	DisplayName string
}

// Apply validates upd against u and, when it passes, applies it in place.
func (u *User) Apply(upd Update) error {
	name := strings.TrimSpace(upd.Name)
	if name != "" && name != u.Name {
		return domain.Invalid(domain.ReasonNameImmutable, "name", "cannot be changed after creation")
	}

	var check domain.FieldCheck
	check.MaxLength("display_name", upd.DisplayName, domain.MaxUpdatedDisplayNameLength)
	if err := check.Err(); err != nil {
		return err
	}

	if dn := strings.TrimSpace(upd.DisplayName); dn != "" {
		u.DisplayName = dn
	}
	return nil
}
