package ports

import (
	"context"

	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
)

// UserService defines the service port for user operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type UserService interface {
	// CreateUser validates and stores a new user and returns it with
	// server-assigned fields (ID, CreatedAt).
	// Returns domain.ErrValidation or domain.ErrConflict (duplicate_name).
	CreateUser(ctx context.Context, u *user.User) (*user.User, error)

	// UpdateUser changes the display name of a user. The name may be sent
	// but must equal the stored one.
	// Returns domain.ErrNotFound or domain.ErrValidation (too_long,
	// name_immutable).
	UpdateUser(ctx context.Context, id string, upd user.Update) (*user.User, error)

	// GetUser returns a single user.
	// Returns domain.ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, id string) (*user.User, error)

	ListUsers(ctx context.Context) ([]user.User, error)

	// ListUserTeams returns the teams the user belongs to.
	// Returns domain.ErrNotFound if the user does not exist.
	ListUserTeams(ctx context.Context, id string) ([]team.Team, error)
}

// TeamService defines the service port for team and membership operations.
type TeamService interface {
	// CreateTeam validates and stores a new team. The admin becomes the
	// first member.
	// Returns domain.ErrValidation, domain.ErrConflict (duplicate_name), or
	// domain.ErrNotFound (admin_not_found).
	CreateTeam(ctx context.Context, t *team.Team) (*team.Team, error)

	// UpdateTeam replaces name, description and admin. A new admin who is
	// not yet a member is added, subject to the member cap.
	UpdateTeam(ctx context.Context, id string, t *team.Team) (*team.Team, error)

	// GetTeam returns a team with its member IDs.
	GetTeam(ctx context.Context, id string) (*team.Team, error)

	ListTeams(ctx context.Context) ([]team.Team, error)

	// DeleteTeam removes a team with its boards and their tasks.
	DeleteTeam(ctx context.Context, id string) error

	// ListMembers returns the users belonging to a team.
	ListMembers(ctx context.Context, id string) ([]user.User, error)

	// AddMembers adds users to a team, all or nothing.
	// Returns domain.ErrLimitExceeded (too_many, member_cap_exceeded) or
	// domain.ErrValidation (invalid_user_id).
	AddMembers(ctx context.Context, id string, userIDs []string) (*team.Team, error)

	// RemoveMembers removes users from a team, all or nothing. The admin
	// cannot be removed.
	RemoveMembers(ctx context.Context, id string, userIDs []string) (*team.Team, error)
}

// BoardView is a board together with its tasks, read in one transaction.
type BoardView struct {
	Board board.Board
	Tasks []task.Task
}

// BoardService defines the service port for board operations.
type BoardService interface {
	// CreateBoard validates and stores a new OPEN board.
	// Returns domain.ErrValidation, domain.ErrNotFound (team_not_found), or
	// domain.ErrConflict (duplicate_name_in_team).
	CreateBoard(ctx context.Context, b *board.Board) (*board.Board, error)

	// CloseBoard moves a board to CLOSED when all of its tasks are COMPLETE.
	// Returns domain.ErrNotFound or domain.ErrPrecondition (incomplete_tasks,
	// board_closed).
	CloseBoard(ctx context.Context, id string) (*board.Board, error)

	// GetBoard returns a board with its tasks.
	GetBoard(ctx context.Context, id string) (*BoardView, error)

	// ListBoards returns the boards of a team matching filter.
	// Returns domain.ErrNotFound (team_not_found).
	ListBoards(ctx context.Context, teamID string, filter board.Filter) ([]board.Board, error)

	// ListTasks returns the tasks of a board.
	ListTasks(ctx context.Context, boardID string) ([]task.Task, error)
}

// TaskService defines the service port for task operations.
type TaskService interface {
	// CreateTask validates and stores a new OPEN task on an OPEN board.
	// Returns domain.ErrValidation, domain.ErrNotFound (board_not_found,
	// user_not_found), domain.ErrPrecondition (board_closed), or
	// domain.ErrConflict (duplicate_title_in_board).
	CreateTask(ctx context.Context, t *task.Task) (*task.Task, error)

	// UpdateTaskStatus sets the status of a task whose board is still OPEN.
	// Returns domain.ErrNotFound, domain.ErrValidation (invalid_status), or
	// domain.ErrPrecondition (board_closed).
	UpdateTaskStatus(ctx context.Context, id string, status task.Status) (*task.Task, error)

	// GetTask returns a single task.
	GetTask(ctx context.Context, id string) (*task.Task, error)
}

// ExportService defines the service port for board export.
type ExportService interface {
	// ExportBoard renders a board in the given format and, when an output
	// directory is configured, writes it to disk.
	// Returns domain.ErrNotFound or domain.ErrUnavailable.
	ExportBoard(ctx context.Context, boardID string, format export.Format) (*export.Artifact, error)
}
