package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/task-planner/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/domain/board"
	"github.com/jsamuelsen11/task-planner/internal/domain/task"
	"github.com/jsamuelsen11/task-planner/internal/domain/team"
	"github.com/jsamuelsen11/task-planner/internal/domain/user"
	"github.com/jsamuelsen11/task-planner/internal/platform/config"
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fixture bundles every service over one fresh store.
type fixture struct {
	store  *sqlite.Store
	users  *UserService
	teams  *TeamService
	boards *BoardService
	tasks  *TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.Open(&config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "planner.db"),
		BusyTimeout: 5 * time.Second,
	}, discardLogger(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	opts := testOptions()
	return &fixture{
		store:  store,
		users:  NewUserService(store, discardLogger(), opts...),
		teams:  NewTeamService(store, discardLogger(), opts...),
		boards: NewBoardService(store, discardLogger(), opts...),
		tasks:  NewTaskService(store, discardLogger(), opts...),
	}
}

func testOptions() []Option {
	var seq atomic.Int64
	return []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return fmt.Sprintf("id-%03d", seq.Add(1)) }),
	}
}

func (f *fixture) user(t *testing.T, name string) *user.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), &user.User{Name: name, DisplayName: name})
	require.NoError(t, err)
	return u
}

func (f *fixture) team(t *testing.T, name, adminID string) *team.Team {
	t.Helper()
	tm, err := f.teams.CreateTeam(context.Background(), &team.Team{
		Name: name, Description: "team " + name, AdminID: adminID,
	})
	require.NoError(t, err)
	return tm
}

func (f *fixture) board(t *testing.T, teamID, name string) *board.Board {
	t.Helper()
	b, err := f.boards.CreateBoard(context.Background(), &board.Board{
		Name: name, Description: "board " + name, TeamID: teamID,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) task(t *testing.T, boardID, userID, title string) *task.Task {
	t.Helper()
	k, err := f.tasks.CreateTask(context.Background(), &task.Task{
		Title: title, Description: "task " + title, BoardID: boardID, UserID: userID,
	})
	require.NoError(t, err)
	return k
}

// requireReason asserts err has the given kind and reason.
func requireReason(t *testing.T, err, kind error, reason domain.Reason) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	require.Equal(t, reason, domain.ReasonOf(err))
}
