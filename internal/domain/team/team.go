// Package team defines the Team entity, its field rules, and the membership
// arithmetic bounded by domain.MaxTeamMembers.
package team

import (
	"time"

	"github.com/jsamuelsen11/task-planner/internal/domain"
)

// Team is a named group of users with one distinguished admin. The admin is
// always a member; MemberIDs includes the admin.
type Team struct {
	ID          string
	Name        string
	Description string
	AdminID     string
	MemberIDs   []string
	CreatedAt   time.Time
}

// Validate checks the creation and update rules for a Team.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Team) Validate() error {
	var check domain.FieldCheck

	check.Required("name", t.Name)
	check.Required("description", t.Description)
	check.Required("admin_id", t.AdminID)
	check.MaxLength("name", t.Name, domain.MaxNameLength)
	check.MaxLength("description", t.Description, domain.MaxDescriptionLength)

	return check.Err()
}

// IsMember reports whether userID belongs to the team.
func (t *Team) IsMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
