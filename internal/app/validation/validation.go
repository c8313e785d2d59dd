// Package validation implements the stateful checks every write path runs
// before mutating the store: field rules, scoped uniqueness, referential
// integrity, the team membership cap, and the board lifecycle gate.
//
// A Validator is bound to one store transaction. Running the checks and the
// write that depends on them in the same transaction is what makes a check
// hold at commit time. The Validator never mutates state.
package validation

import (
	"context"
	"strings"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Validator checks proposed changes against the state visible in tx.
type Validator struct {
	tx ports.Tx
}

// New binds a Validator to tx.
func New(tx ports.Tx) *Validator {
	return &Validator{tx: tx}
}

// NewUser checks a user about to be created. Fields are trimmed in place.
func (v *Validator) NewUser(ctx context.Context, u *user.User) error {
	u.Name = strings.TrimSpace(u.Name)
	u.DisplayName = strings.TrimSpace(u.DisplayName)

	if err := u.Validate(); err != nil {
		return err
	}

	taken, err := v.tx.Users().ExistsByName(ctx, u.Name)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict(domain.ReasonDuplicateName, "user name %q already exists", u.Name)
	}
	return nil
}

// UserUpdate loads the user and applies upd to it. The returned user holds
// the new state; nothing is written.
func (v *Validator) UserUpdate(ctx context.Context, id string, upd user.Update) (*user.User, error) {
	var check domain.FieldCheck
	check.MaxLength("display_name", upd.DisplayName, domain.MaxUpdatedDisplayNameLength)
	if err := check.Err(); err != nil {
		return nil, err
	}

	u, err := v.tx.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.Apply(upd); err != nil {
		return nil, err
	}
	return u, nil
}

// NewTeam checks a team about to be created and makes its admin the only
// member. Fields are trimmed in place.
func (v *Validator) NewTeam(ctx context.Context, t *team.Team) error {
	normalizeTeam(t)

	if err := t.Validate(); err != nil {
		return err
	}
	if err := v.uniqueTeamName(ctx, t.Name, ""); err != nil {
		return err
	}
	if err := v.adminExists(ctx, t.AdminID); err != nil {
		return err
	}

	t.MemberIDs = []string{t.AdminID}
	return nil
}

// TeamUpdate checks replacing current's name, description and admin with
// those of next. It returns the IDs that must join the team so the admin
// stays a member: empty, or the new admin.
func (v *Validator) TeamUpdate(ctx context.Context, current, next *team.Team) ([]string, error) {
	normalizeTeam(next)

	if err := next.Validate(); err != nil {
		return nil, err
	}
	if err := v.uniqueTeamName(ctx, next.Name, current.ID); err != nil {
		return nil, err
	}
	if err := v.adminExists(ctx, next.AdminID); err != nil {
		return nil, err
	}

	joining := current.Newcomers([]string{next.AdminID})
	if err := current.CheckCapacity(len(joining)); err != nil {
		return nil, err
	}
	return joining, nil
}

// MembersToAdd normalizes a bulk add request, loads the team and returns it
// with the IDs that are not yet members. The batch is checked before the
// team lookup. Every ID must name an existing user, and the team must stay
// within domain.MaxTeamMembers.
func (v *Validator) MembersToAdd(ctx context.Context, teamID string, ids []string) (*team.Team, []string, error) {
	t, normalized, err := v.membershipBatch(ctx, teamID, ids)
	if err != nil {
		return nil, nil, err
	}

	joining := t.Newcomers(normalized)
	if err := t.CheckCapacity(len(joining)); err != nil {
		return nil, nil, err
	}
	return t, joining, nil
}

// MembersToRemove normalizes a bulk remove request, loads the team and
// returns it with the normalized IDs. Every ID must name an existing user
// and the admin cannot be removed.
func (v *Validator) MembersToRemove(ctx context.Context, teamID string, ids []string) (*team.Team, []string, error) {
	t, normalized, err := v.membershipBatch(ctx, teamID, ids)
	if err != nil {
		return nil, nil, err
	}
	if err := t.CheckRemovable(normalized); err != nil {
		return nil, nil, err
	}
	return t, normalized, nil
}

// NewBoard checks a board about to be created. Fields are trimmed in place.
func (v *Validator) NewBoard(ctx context.Context, b *board.Board) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	b.TeamID = strings.TrimSpace(b.TeamID)

	if err := b.Validate(); err != nil {
		return err
	}

	if _, err := v.tx.Teams().Get(ctx, b.TeamID); err != nil {
		return domain.Retag(err, domain.ReasonTeamNotFound)
	}

	taken, err := v.tx.Boards().ExistsByName(ctx, b.TeamID, b.Name)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict(domain.ReasonDuplicateNameInTeam,
			"team %s already has a board named %q", b.TeamID, b.Name)
	}
	return nil
}

// NewTask checks a task about to be created: fields, the parent board, the
// board's lifecycle gate, title uniqueness within the board, and the
// assignee. Fields are trimmed in place.
func (v *Validator) NewTask(ctx context.Context, k *task.Task) error {
	k.Title = strings.TrimSpace(k.Title)
	k.Description = strings.TrimSpace(k.Description)
	k.BoardID = strings.TrimSpace(k.BoardID)
	k.UserID = strings.TrimSpace(k.UserID)

	if err := k.Validate(); err != nil {
		return err
	}

	b, err := v.tx.Boards().Get(ctx, k.BoardID)
	if err != nil {
		return domain.Retag(err, domain.ReasonBoardNotFound)
	}
	if err := b.EnsureOpen(); err != nil {
		return err
	}

	taken, err := v.tx.Tasks().ExistsByTitle(ctx, k.BoardID, k.Title)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict(domain.ReasonDuplicateTitleInBoard,
			"board %s already has a task titled %q", k.BoardID, k.Title)
	}

	if _, err := v.tx.Users().Get(ctx, k.UserID); err != nil {
		return domain.Retag(err, domain.ReasonUserNotFound)
	}
	return nil
}

// TaskStatusChange parses status, loads the task and checks that its board
// still accepts changes. The returned task carries the parsed status.
func (v *Validator) TaskStatusChange(ctx context.Context, id string, raw task.Status) (*task.Task, error) {
	status, err := task.ParseStatus(string(raw))
	if err != nil {
		return nil, err
	}

	k, err := v.tx.Tasks().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := v.tx.Boards().Get(ctx, k.BoardID)
	if err != nil {
		return nil, err
	}
	if err := b.EnsureOpen(); err != nil {
		return nil, err
	}
	k.Status = status
	return k, nil
}

func normalizeTeam(t *team.Team) {
	t.Name = strings.TrimSpace(t.Name)
	t.Description = strings.TrimSpace(t.Description)
	t.AdminID = strings.TrimSpace(t.AdminID)
}

func (v *Validator) uniqueTeamName(ctx context.Context, name, excludeID string) error {
	taken, err := v.tx.Teams().ExistsByName(ctx, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Conflict(domain.ReasonDuplicateName, "team name %q already exists", name)
	}
	return nil
}

func (v *Validator) adminExists(ctx context.Context, adminID string) error {
	if _, err := v.tx.Users().Get(ctx, adminID); err != nil {
		return domain.Retag(err, domain.ReasonAdminNotFound)
	}
	return nil
}

// membershipBatch normalizes a membership batch, loads the team and rejects
// the batch when any ID names no user.
func (v *Validator) membershipBatch(ctx context.Context, teamID string, ids []string) (*team.Team, []string, error) {
	normalized, err := team.NormalizeBatch(ids)
	if err != nil {
		return nil, nil, err
	}

	t, err := v.tx.Teams().Get(ctx, teamID)
	if err != nil {
		return nil, nil, err
	}

	missing, err := v.tx.Users().Missing(ctx, normalized)
	if err != nil {
		return nil, nil, err
	}
	if len(missing) > 0 {
		return nil, nil, domain.Invalid(domain.ReasonInvalidUserID, "user_ids",
			"unknown user IDs: "+strings.Join(missing, ", "))
	}
	return t, normalized, nil
}
