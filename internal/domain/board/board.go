// Package board defines the Board entity and its OPEN -> CLOSED lifecycle.
package board

import (
	"fmt"
	"time"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// Status represents the lifecycle state of a Board.
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Board groups the tasks of one team. Name is unique within the team.
// EndTime is nil while the board is OPEN.
type Board struct {
	ID          string
	Name        string
	Description string
	TeamID      string
	Status      Status
	CreatedAt   time.Time
	EndTime     *time.Time
}

// Validate checks the creation rules for a Board.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (b *Board) Validate() error {
	var check domain.FieldCheck

	check.Required("name", b.Name)
	check.Required("description", b.Description)
	check.Required("team_id", b.TeamID)
	check.MaxLength("name", b.Name, domain.MaxNameLength)
	check.MaxLength("description", b.Description, domain.MaxDescriptionLength)

	return check.Err()
}

// IsOpen reports whether the board still accepts changes.
func (b *Board) IsOpen() bool {
	return b.Status == StatusOpen
}

// Filter selects boards of a team by status. The zero value matches all.
type Filter struct {
	Status Status
}

// ParseFilter converts a raw status filter into a Filter. An empty value
// means OPEN; "ALL" lists boards in every state.
func ParseFilter(raw string) (Filter, error) {
	switch s := Status(raw); {
	case raw == "":
		return Filter{Status: StatusOpen}, nil
	case raw == "ALL":
		return Filter{}, nil
	case s.IsValid():
		return Filter{Status: s}, nil
	default:
		return Filter{}, domain.Invalid(domain.ReasonInvalidStatus, "status",
			fmt.Sprintf("invalid: %q, want one of OPEN, CLOSED, ALL", raw))
	}
}
