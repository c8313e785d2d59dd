package ports

import (
	"context"

	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
)

// Store is the transactional entity store. Implemented by the storage
// adapter; called by the application layer.
//
// Every read and write of one operation runs inside a single transaction so
// that checks made against store state hold at commit time. Constraint
// violations at the storage boundary are reported with the domain error
// kinds: uniqueness as domain.ErrConflict, dangling references as
// domain.ErrNotFound.
type Store interface {
	// Update runs fn in a read-write transaction. The transaction commits
	// when fn returns nil and rolls back otherwise; fn's error is returned
	// unchanged.
	Update(ctx context.Context, fn func(tx Tx) error) error

	// View runs fn in a transaction that is always rolled back.
	View(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the per-entity repositories bound to one transaction.
// Repositories must not be retained after the transaction ends.
type Tx interface {
	Users() UserRepository
	Teams() TeamRepository
	Boards() BoardRepository
	Tasks() TaskRepository
}

// UserRepository persists users.
type UserRepository interface {
	// Create inserts u. ID and CreatedAt must already be set.
	Create(ctx context.Context, u *user.User) error

	// Get returns the user with the given ID.
	// Returns domain.ErrNotFound if the user does not exist.
	Get(ctx context.Context, id string) (*user.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]user.User, error)

	// ExistsByName reports whether a user with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// UpdateDisplayName sets the display name of an existing user.
	// Returns domain.ErrNotFound if the user does not exist.
	UpdateDisplayName(ctx context.Context, id, displayName string) error

	// Missing returns the subset of ids that match no user, in input order.
	Missing(ctx context.Context, ids []string) ([]string, error)

	// Teams returns the teams the user is a member of, without member IDs.
	Teams(ctx context.Context, userID string) ([]team.Team, error)
}

// TeamRepository persists teams and their membership.
type TeamRepository interface {
	// Create inserts t and one membership row per entry in t.MemberIDs.
	Create(ctx context.Context, t *team.Team) error

	// Get returns the team with MemberIDs populated.
	// Returns domain.ErrNotFound if the team does not exist.
	Get(ctx context.Context, id string) (*team.Team, error)

	// List returns all teams ordered by creation time, without member IDs.
	List(ctx context.Context) ([]team.Team, error)

	// ExistsByName reports whether a team other than excludeID carries name.
	// Pass an empty excludeID on creation.
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)

	// Update stores the name, description and admin of an existing team.
	// Returns domain.ErrNotFound if the team does not exist.
	Update(ctx context.Context, t *team.Team) error

	// Delete removes the team together with its boards, their tasks, and
	// its membership rows.
	// Returns domain.ErrNotFound if the team does not exist.
	Delete(ctx context.Context, id string) error

	// Members returns the users belonging to the team ordered by name.
	Members(ctx context.Context, teamID string) ([]user.User, error)

	// AddMembers inserts membership rows for userIDs, none of which may
	// already be members.
	AddMembers(ctx context.Context, teamID string, userIDs []string) error

	// RemoveMembers deletes the membership rows of userIDs. IDs that are not
	// members are ignored.
	RemoveMembers(ctx context.Context, teamID string, userIDs []string) error
}

// BoardRepository persists boards.
type BoardRepository interface {
	// Create inserts b. ID, Status and CreatedAt must already be set.
	Create(ctx context.Context, b *board.Board) error

	// Get returns the board with the given ID.
	// Returns domain.ErrNotFound if the board does not exist.
	Get(ctx context.Context, id string) (*board.Board, error)

	// ListByTeam returns the team's boards matching filter, ordered by
	// creation time.
	ListByTeam(ctx context.Context, teamID string, filter board.Filter) ([]board.Board, error)

	// ExistsByName reports whether the team already has a board named name.
	ExistsByName(ctx context.Context, teamID, name string) (bool, error)

	// Close stores the status and end time of b.
	// Returns domain.ErrNotFound if the board does not exist.
	Close(ctx context.Context, b *board.Board) error
}

// TaskRepository persists tasks.
type TaskRepository interface {
	// Create inserts t. ID, Status and CreatedAt must already be set.
	Create(ctx context.Context, t *task.Task) error

	// Get returns the task with the given ID.
	// Returns domain.ErrNotFound if the task does not exist.
	Get(ctx context.Context, id string) (*task.Task, error)

	// ListByBoard returns the board's tasks ordered by creation time.
	ListByBoard(ctx context.Context, boardID string) ([]task.Task, error)

	// ExistsByTitle reports whether the board already has a task titled title.
	ExistsByTitle(ctx context.Context, boardID, title string) (bool, error)

	// UpdateStatus sets the status of an existing task.
	// Returns domain.ErrNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id string, status task.Status) error
}
