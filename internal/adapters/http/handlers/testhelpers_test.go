package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/task-planner/internal/adapters/http"
	"github.com/jsamuelsen11/task-planner/internal/adapters/http/dto"
	"github.com/jsamuelsen11/task-planner/internal/adapters/http/handlers"
	exportadapter "github.com/jsamuelsen11/task-planner/internal/adapters/export"
	"github.com/jsamuelsen11/task-planner/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen11/task-planner/internal/app"
	"github.com/jsamuelsen11/task-planner/internal/domain/export"
	"github.com/jsamuelsen11/task-planner/internal/platform/config"
	"github.com/jsamuelsen11/task-planner/mocks"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

// testAPI is the full router backed by real services over a fresh store.
type testAPI struct {
	t         *testing.T
	router    http.Handler
	outputDir string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store, err := sqlite.Open(&config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "planner.db"),
		BusyTimeout: 5 * time.Second,
	}, logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	// Sequential IDs under a fixed clock keep list ordering deterministic.
	var seq atomic.Int64
	opts := []app.Option{
		app.WithClock(func() time.Time { return testTime }),
		app.WithIDGenerator(func() string { return fmt.Sprintf("id-%03d", seq.Add(1)) }),
	}

	outputDir := filepath.Join(t.TempDir(), "exports")
	router := adapthttp.NewRouter(adapthttp.Handlers{
		Users:  handlers.NewUserHandler(app.NewUserService(store, logger, opts...)),
		Teams:  handlers.NewTeamHandler(app.NewTeamService(store, logger, opts...)),
		Boards: handlers.NewBoardHandler(app.NewBoardService(store, logger, opts...)),
		Tasks:  handlers.NewTaskHandler(app.NewTaskService(store, logger, opts...)),
		Export: handlers.NewExportHandler(
			app.NewExportService(store, exportadapter.NewFormatter(), outputDir, logger, opts...),
			export.FormatText,
		),
		Health: handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t)),
	})

	return &testAPI{t: t, router: router, outputDir: outputDir}
}

// do sends a request through the router. A non-nil body is encoded as JSON.
func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var rdr io.Reader
	if body != nil {
		rdr = jsonBody(a.t, body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) createUser(name string) dto.UserResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/users", dto.CreateUserRequest{Name: name, DisplayName: name + " display"})
	requireStatus(a.t, rec, http.StatusCreated)
	return decodeJSON[dto.UserResponse](a.t, rec)
}

func (a *testAPI) createTeam(name, adminID string) dto.TeamResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/teams", dto.TeamRequest{Name: name, Description: "team " + name, AdminID: adminID})
	requireStatus(a.t, rec, http.StatusCreated)
	return decodeJSON[dto.TeamResponse](a.t, rec)
}

func (a *testAPI) createBoard(name, teamID string) dto.BoardResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/boards", dto.CreateBoardRequest{Name: name, Description: "board " + name, TeamID: teamID})
	requireStatus(a.t, rec, http.StatusCreated)
	return decodeJSON[dto.BoardResponse](a.t, rec)
}

func (a *testAPI) createTask(title, boardID, userID string) dto.TaskResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/tasks", dto.CreateTaskRequest{
		Title: title, Description: "task " + title, BoardID: boardID, UserID: userID,
	})
	requireStatus(a.t, rec, http.StatusCreated)
	return decodeJSON[dto.TaskResponse](a.t, rec)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// requireProblem asserts rec is a problem response with the given status and
// reason.
func requireProblem(t *testing.T, rec *httptest.ResponseRecorder, status int, reason string) dto.ErrorResponse {
	t.Helper()
	requireStatus(t, rec, status)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if resp.Reason != reason {
		t.Errorf("reason = %q, want %q (detail %q)", resp.Reason, reason, resp.Detail)
	}
	return resp
}
